package usecase

import "github.com/colorgrid/colorgrid-backend/internal/entity"

// Server-to-client event names of the real-time protocol.
const (
	EventMatchFound      = "match_found"
	EventGameStart       = "game_start"
	EventMoveMade        = "move_made"
	EventGameEnd         = "game_end"
	EventGameOverForfeit = "game_over_forfeit"
	EventUpdateCoins     = "update_coins"
)

type MatchFoundPayload struct {
	GameID   string `json:"game_id"`
	Opponent string `json:"opponent"`
	Color    string `json:"color"`
}

type GameStartPayload struct {
	GameID string      `json:"game_id"`
	Grid   entity.Grid `json:"grid"`
	Turn   string      `json:"turn"`
	ColorA string      `json:"color_a"`
	ColorB string      `json:"color_b"`
}

type MoveMadePayload struct {
	GameID   string      `json:"game_id"`
	Grid     entity.Grid `json:"grid"`
	Turn     string      `json:"turn"`
	LastMove entity.Move `json:"last_move"`
}

// GameEndPayload - completion by grid fill. Message is keyed by player id so
// each participant can show their own tailored text.
type GameEndPayload struct {
	GameID  string            `json:"game_id"`
	Grid    entity.Grid       `json:"grid"`
	Winner  string            `json:"winner,omitempty"`
	Result  string            `json:"result"`
	AreaA   int               `json:"area_a"`
	AreaB   int               `json:"area_b"`
	ColorA  string            `json:"color_a"`
	ColorB  string            `json:"color_b"`
	Message map[string]string `json:"message"`
}

type GameOverForfeitPayload struct {
	GameID    string            `json:"game_id"`
	Winner    string            `json:"winner"`
	Forfeiter string            `json:"forfeiter"`
	Result    string            `json:"result"`
	Message   map[string]string `json:"message"`
}
