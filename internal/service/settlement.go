package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/colorgrid/colorgrid-backend/internal/entity"
	"github.com/colorgrid/colorgrid-backend/internal/repository"
)

// Coin movement on a decisive result. The loser's balance never goes below zero.
const coinStake = 200

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// SettlementService - applies the post-completion stats and coin updates
// for both participants of a finished game.
type SettlementService struct {
	logger *slog.Logger
	users  userRepo
}

func NewSettlementService(logger *slog.Logger, users userRepo) *SettlementService {
	return &SettlementService{
		logger: logger,
		users:  users,
	}
}

// ApplyWin - settles a decisive result: the winner gains coins and a win,
// the loser pays the stake (floored at zero) and takes a loss.
func (that *SettlementService) ApplyWin(ctx context.Context, winnerID, loserID string) error {
	winner, err := that.getOrCreateUser(ctx, winnerID)
	if err != nil {
		return fmt.Errorf("failed to load winner: %w", err)
	}

	loser, err := that.getOrCreateUser(ctx, loserID)
	if err != nil {
		return fmt.Errorf("failed to load loser: %w", err)
	}

	winner.Wins++
	winner.Coins += coinStake

	loser.Losses++
	loser.Coins -= coinStake
	if loser.Coins < 0 {
		loser.Coins = 0
	}

	if err = that.users.Update(ctx, winner); err != nil {
		return fmt.Errorf("failed to update winner: %w", err)
	}

	if err = that.users.Update(ctx, loser); err != nil {
		return fmt.Errorf("failed to update loser: %w", err)
	}

	return nil
}

// ApplyDraw - both participants take a draw; coins do not move.
func (that *SettlementService) ApplyDraw(ctx context.Context, playerAID, playerBID string) error {
	for _, id := range []string{playerAID, playerBID} {
		user, err := that.getOrCreateUser(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		user.Draws++

		if err = that.users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	return nil
}

func (that *SettlementService) getOrCreateUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := that.users.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	user = &entity.User{
		ID:    id,
		Coins: entity.StartingCoins,
	}

	if err = that.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	that.logger.Info("created user record at settlement", "userID", id)

	return user, nil
}
