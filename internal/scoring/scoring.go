// Package scoring determines the winner of a filled grid: whoever owns the
// largest 4-connected region of their own color.
package scoring

import "github.com/colorgrid/colorgrid-backend/internal/entity"

type cell struct {
	row, col int
}

var neighbors = [4]cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// LargestRegion - the size of the largest 4-connected region of color in grid,
// or 0 if the color is absent. Iterative flood fill with an explicit stack;
// every cell is visited exactly once, so the result does not depend on scan order.
func LargestRegion(grid entity.Grid, color string) int {
	if color == entity.EmptyCell {
		return 0
	}

	var visited [entity.GridSize][entity.GridSize]bool

	largest := 0

	for row := range grid {
		for col := range grid[row] {
			if visited[row][col] || grid[row][col] != color {
				continue
			}

			size := 0
			stack := []cell{{row, col}}
			visited[row][col] = true

			for len(stack) > 0 {
				current := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++

				for _, d := range neighbors {
					next := cell{current.row + d.row, current.col + d.col}
					if next.row < 0 || next.row >= entity.GridSize || next.col < 0 || next.col >= entity.GridSize {
						continue
					}

					if visited[next.row][next.col] || grid[next.row][next.col] != color {
						continue
					}

					visited[next.row][next.col] = true
					stack = append(stack, next)
				}
			}

			if size > largest {
				largest = size
			}
		}
	}

	return largest
}
