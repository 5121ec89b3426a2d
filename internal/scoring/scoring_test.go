package scoring

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/colorgrid/colorgrid-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridFromRows - builds a grid from single-letter row strings,
// "r"/"b" for colors and "." for an empty cell.
func gridFromRows(t *testing.T, rows [entity.GridSize]string) entity.Grid {
	t.Helper()

	var grid entity.Grid
	for row, line := range rows {
		require.Len(t, line, entity.GridSize)
		for col, ch := range line {
			switch ch {
			case 'r':
				grid[row][col] = "red"
			case 'b':
				grid[row][col] = "blue"
			case '.':
				grid[row][col] = entity.EmptyCell
			default:
				t.Fatalf("unexpected cell %q", ch)
			}
		}
	}

	return grid
}

func TestLargestRegion(t *testing.T) {
	t.Run("Returns zero when color is absent", func(t *testing.T) {
		// Given: an empty grid
		var grid entity.Grid

		// When: scoring any color
		area := LargestRegion(grid, "red")

		// Then: the area should be zero
		assert.Equal(t, 0, area)
	})

	t.Run("Counts a single cell", func(t *testing.T) {
		grid := gridFromRows(t, [entity.GridSize]string{
			".....",
			"..r..",
			".....",
			".....",
			".....",
		})

		assert.Equal(t, 1, LargestRegion(grid, "red"))
	})

	t.Run("Diagonal neighbors are not connected", func(t *testing.T) {
		// Given: red cells touching only diagonally
		grid := gridFromRows(t, [entity.GridSize]string{
			"r....",
			".r...",
			"..r..",
			".....",
			".....",
		})

		// Then: each cell is its own region
		assert.Equal(t, 1, LargestRegion(grid, "red"))
	})

	t.Run("Decisive win scenario: L of 4 versus blob of 19", func(t *testing.T) {
		// Given: red owns an L of 4 connected cells plus 2 isolated ones,
		// blue owns the remaining 19 cells in one blob
		grid := gridFromRows(t, [entity.GridSize]string{
			"rbbbb",
			"rbbbb",
			"rrbbb",
			"bbbbr",
			"bbrbb",
		})

		assert.Equal(t, 4, LargestRegion(grid, "red"))
		assert.Equal(t, 19, LargestRegion(grid, "blue"))
	})

	t.Run("Draw scenario: both largest clusters equal 12", func(t *testing.T) {
		// Given: red owns 13 cells (cluster of 12 plus one isolated),
		// blue owns 12 connected cells
		grid := gridFromRows(t, [entity.GridSize]string{
			"rrrrr",
			"rrrrr",
			"rrbbb",
			"bbbbb",
			"bbbbr",
		})

		assert.Equal(t, 12, LargestRegion(grid, "red"))
		assert.Equal(t, 12, LargestRegion(grid, "blue"))
	})

	t.Run("Full single-color grid", func(t *testing.T) {
		var grid entity.Grid
		for row := range grid {
			for col := range grid[row] {
				grid[row][col] = "teal"
			}
		}

		assert.Equal(t, entity.GridSize*entity.GridSize, LargestRegion(grid, "teal"))
	})

	t.Run("Empty cells never count towards a region", func(t *testing.T) {
		grid := gridFromRows(t, [entity.GridSize]string{
			"r.r.r",
			".....",
			"r.r.r",
			".....",
			"r.r.r",
		})

		assert.Equal(t, 1, LargestRegion(grid, "red"))
		assert.Equal(t, 0, LargestRegion(grid, entity.EmptyCell))
	})
}

func TestLargestRegion_MatchesReference(t *testing.T) {
	// Random grids of every color distribution, compared against an
	// independent breadth-first reference with a different traversal order.
	rng := rand.New(rand.NewSource(42)) //nolint: gosec // deterministic test data

	cells := []string{"red", "blue", entity.EmptyCell}

	for i := 0; i < 500; i++ {
		var grid entity.Grid
		for row := range grid {
			for col := range grid[row] {
				grid[row][col] = cells[rng.Intn(len(cells))]
			}
		}

		for _, color := range []string{"red", "blue"} {
			t.Run(fmt.Sprintf("grid_%d_%s", i, color), func(t *testing.T) {
				assert.Equal(t, referenceLargestRegion(grid, color), LargestRegion(grid, color))
			})
		}
	}
}

// referenceLargestRegion - brute-force oracle: breadth-first labeling scanned
// column-major, deliberately different from the production traversal.
func referenceLargestRegion(grid entity.Grid, color string) int {
	var visited [entity.GridSize][entity.GridSize]bool

	largest := 0

	for col := 0; col < entity.GridSize; col++ {
		for row := 0; row < entity.GridSize; row++ {
			if visited[row][col] || grid[row][col] != color {
				continue
			}

			size := 0
			queue := [][2]int{{row, col}}
			visited[row][col] = true

			for len(queue) > 0 {
				current := queue[0]
				queue = queue[1:]
				size++

				for _, d := range [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
					r, c := current[0]+d[0], current[1]+d[1]
					if r < 0 || r >= entity.GridSize || c < 0 || c >= entity.GridSize {
						continue
					}
					if visited[r][c] || grid[r][c] != color {
						continue
					}
					visited[r][c] = true
					queue = append(queue, [2]int{r, c})
				}
			}

			if size > largest {
				largest = size
			}
		}
	}

	return largest
}
