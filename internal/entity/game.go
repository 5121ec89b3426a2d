package entity

import (
	"math/rand"
	"time"

	"github.com/colorgrid/colorgrid-backend/internal/apperror"
)

const (
	GridSize = 5

	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	ResultPlayerAWin = "player_a_win"
	ResultPlayerBWin = "player_b_win"
	ResultDraw       = "draw"
	ResultForfeit    = "forfeit"

	EmptyCell = ""
)

// Palette - the colors a game pair is drawn from. Every game uses exactly two of them.
var Palette = []string{"red", "blue", "green", "purple", "orange", "pink", "teal", "yellow"}

// Grid is the 5x5 playing field. A cell holds one of the two game colors or EmptyCell.
type Grid [GridSize][GridSize]string

type Move struct {
	Player    string    `json:"player"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Color     string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
}

type Game struct {
	ID        string `json:"id"`
	PlayerA   string `json:"player_a"`
	PlayerB   string `json:"player_b"`
	ColorA    string `json:"color_a"`
	ColorB    string `json:"color_b"`
	Grid      Grid   `json:"grid"`
	Turn      string `json:"turn"`
	Status    string `json:"status"`
	Winner    string `json:"winner,omitempty"`
	Result    string `json:"result,omitempty"`
	Forfeiter string `json:"forfeiter,omitempty"`
	Moves     []Move `json:"moves"`
}

// NewGame - creates an in-progress game for a matched pair.
// playerA is the first-arrived player and holds the first turn.
func NewGame(id, playerA, playerB string) *Game {
	colorA, colorB := RandomColorPair()

	return &Game{
		ID:      id,
		PlayerA: playerA,
		PlayerB: playerB,
		ColorA:  colorA,
		ColorB:  colorB,
		Turn:    playerA,
		Status:  StatusInProgress,
	}
}

// RandomColorPair - draws two distinct colors from the palette with a uniform shuffle.
func RandomColorPair() (string, string) {
	perm := rand.Perm(len(Palette)) //nolint: gosec // not security sensitive
	return Palette[perm[0]], Palette[perm[1]]
}

// ApplyMove - validates and applies a move, appends it to the move log and
// flips the turn. Returns the recorded move.
func (that *Game) ApplyMove(playerID string, row, col int) (Move, error) {
	if !that.IsInProgress() {
		return Move{}, apperror.ErrGameNotInProgress
	}

	if !that.HasPlayer(playerID) {
		return Move{}, apperror.ErrNotParticipant
	}

	if that.Turn != playerID {
		return Move{}, apperror.ErrNotYourTurn
	}

	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return Move{}, apperror.ErrInvalidCell
	}

	if that.Grid[row][col] != EmptyCell {
		return Move{}, apperror.ErrCellOccupied
	}

	move := Move{
		Player:    playerID,
		Row:       row,
		Col:       col,
		Color:     that.ColorOf(playerID),
		Timestamp: time.Now().UTC(),
	}

	that.Grid[row][col] = move.Color
	that.Moves = append(that.Moves, move)
	that.Turn = that.Opponent(playerID)

	return move, nil
}

// RevertMove - undoes the most recent move after a failed persistence attempt,
// so the in-memory state never runs ahead of the durable one.
func (that *Game) RevertMove(move Move) {
	that.Grid[move.Row][move.Col] = EmptyCell
	that.Turn = move.Player

	if n := len(that.Moves); n > 0 {
		that.Moves = that.Moves[:n-1]
	}
}

// Finish - moves the game into its terminal state. Winner is empty for a draw.
func (that *Game) Finish(result, winner string) {
	that.Status = StatusCompleted
	that.Result = result
	that.Winner = winner
	that.Turn = ""
}

// FinishForfeit - terminal state for a participant-initiated forfeit.
func (that *Game) FinishForfeit(forfeiter string) {
	that.Forfeiter = forfeiter
	that.Finish(ResultForfeit, that.Opponent(forfeiter))
}

func (that *Game) IsFilled() bool {
	for row := range that.Grid {
		for col := range that.Grid[row] {
			if that.Grid[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Game) HasPlayer(playerID string) bool {
	return playerID == that.PlayerA || playerID == that.PlayerB
}

// ColorOf - the color assigned to playerID, or EmptyCell for a non-participant.
func (that *Game) ColorOf(playerID string) string {
	switch playerID {
	case that.PlayerA:
		return that.ColorA
	case that.PlayerB:
		return that.ColorB
	default:
		return EmptyCell
	}
}

// Opponent - the other participant, or empty for a non-participant.
func (that *Game) Opponent(playerID string) string {
	switch playerID {
	case that.PlayerA:
		return that.PlayerB
	case that.PlayerB:
		return that.PlayerA
	default:
		return ""
	}
}

func (that *Game) IsCompleted() bool {
	return that.Status == StatusCompleted
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}
