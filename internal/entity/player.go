package entity

// Player - the live pointer from an identity to its at-most-one active game.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
	Color  string `json:"color,omitempty"`
}
