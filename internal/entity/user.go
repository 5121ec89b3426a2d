package entity

// StartingCoins - balance a user record is created with at first settlement.
const StartingCoins = 1000

// User - the durable account record behind the persistence gateway.
// Only coins and the win/loss/draw counters are touched by the game core.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Coins    int    `json:"coins"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}
