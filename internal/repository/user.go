package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/colorgrid/colorgrid-backend/internal/entity"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository - the durable account records the settlement writes to.
type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (that *userRepository) Save(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (id, username, coins, wins, losses, draws) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, user.ID, user.Username, user.Coins, user.Wins, user.Losses, user.Draws)
	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `UPDATE users SET username = ?, coins = ?, wins = ?, losses = ?, draws = ? WHERE id = ?`

	_, err := that.conn.ExecContext(ctx, query, user.Username, user.Coins, user.Wins, user.Losses, user.Draws, user.ID)
	if err != nil {
		return fmt.Errorf("can't update user: %w", err)
	}

	return nil
}

func (that *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT id, username, coins, wins, losses, draws FROM users WHERE id = ?`

	var user entity.User

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.Coins, &user.Wins, &user.Losses, &user.Draws)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}
