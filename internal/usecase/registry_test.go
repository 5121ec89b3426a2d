package usecase

import (
	"testing"

	"github.com/colorgrid/colorgrid-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("Add indexes both participants", func(t *testing.T) {
		// Given: a registered game
		registry := NewRegistry()
		game := entity.NewGame("game1", "alice", "bob")
		registry.Add(game)

		// Then: the session is reachable by id and by either player
		session, ok := registry.Get("game1")
		require.True(t, ok)
		assert.Equal(t, game, session.game)

		for _, playerID := range []string{"alice", "bob"} {
			gameID, found := registry.SessionFor(playerID)
			require.True(t, found)
			assert.Equal(t, "game1", gameID)
		}
	})

	t.Run("Remove clears both indexes", func(t *testing.T) {
		registry := NewRegistry()
		registry.Add(entity.NewGame("game1", "alice", "bob"))

		registry.Remove("game1")

		_, ok := registry.Get("game1")
		assert.False(t, ok)
		_, ok = registry.SessionFor("alice")
		assert.False(t, ok)
		assert.Equal(t, 0, registry.Len())
	})

	t.Run("Remove of an unknown id is a no-op", func(t *testing.T) {
		registry := NewRegistry()

		registry.Remove("ghost")

		assert.Equal(t, 0, registry.Len())
	})
}
