package repository

import (
	"testing"

	"github.com/colorgrid/colorgrid-backend/internal/entity"
	"github.com/colorgrid/colorgrid-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	// Given: a player bound to a game
	player := &entity.Player{
		ID:     "alice",
		GameID: "game123",
		Color:  "red",
	}

	// When: CreateOrUpdate is called
	err := playerRepo.CreateOrUpdate(ctx, player)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a stored player
		player := &entity.Player{
			ID:     "alice",
			GameID: "game123",
			Color:  "teal",
		}

		err := playerRepo.CreateOrUpdate(ctx, player)
		require.NoError(t, err)

		// When: GetByID is called with the existing ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player matches the saved one
		require.NoError(t, err)
		assert.Equal(t, player.ID, retrievedPlayer.ID)
		assert.Equal(t, player.GameID, retrievedPlayer.GameID)
		assert.Equal(t, player.Color, retrievedPlayer.Color)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, "ghost")

		// Then: an ErrPlayerNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrPlayerNotFound, err)
		assert.Empty(t, retrievedPlayer.ID)
	})
}
