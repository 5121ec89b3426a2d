package usecase

import (
	"sync"

	"github.com/colorgrid/colorgrid-backend/internal/entity"
)

// activeSession - one registered game plus the mutex that serializes every
// state transition against it. Holders of mu own the validate-apply-persist-
// broadcast sequence exclusively.
type activeSession struct {
	mu   sync.Mutex
	game *entity.Game
}

// Registry - the process-wide set of active sessions, with a secondary index
// from player identity to its at-most-one active session. Independent from
// the matchmaking queue lock, so pairing never blocks running games.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]*activeSession
	byPlayer map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]*activeSession),
		byPlayer: make(map[string]string),
	}
}

func (that *Registry) Add(game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.byID[game.ID] = &activeSession{game: game}
	that.byPlayer[game.PlayerA] = game.ID
	that.byPlayer[game.PlayerB] = game.ID
}

func (that *Registry) Get(gameID string) (*activeSession, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.byID[gameID]

	return session, ok
}

func (that *Registry) Remove(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.byID[gameID]
	if !ok {
		return
	}

	delete(that.byID, gameID)
	delete(that.byPlayer, session.game.PlayerA)
	delete(that.byPlayer, session.game.PlayerB)
}

// SessionFor - the active session id playerID participates in, if any.
func (that *Registry) SessionFor(playerID string) (string, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	gameID, ok := that.byPlayer[playerID]

	return gameID, ok
}

func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.byID)
}
