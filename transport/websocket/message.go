package websocket

import "encoding/json"

// Client-to-server actions of the real-time protocol.
const (
	ActionFindMatch         = "find_match"
	ActionJoinGame          = "join_game"
	ActionMakeMove          = "make_move"
	ActionForfeitGame       = "forfeit_game"
	ActionCancelMatchmaking = "cancel_matchmaking"
)

// Message - one inbound client command.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event - one outbound server notification.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type GamePayload struct {
	GameID string `json:"game_id"`
}

type MovePayload struct {
	GameID string `json:"game_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}
