package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

// Invalid commands produce no error event back to the sender: the coordinator
// logs and discards them, and handler errors here only surface in the log.

func (that *Server) handleFindMatch(ctx context.Context, playerID string, _ json.RawMessage) error {
	if err := that.coordinator.FindMatch(ctx, playerID); err != nil {
		return fmt.Errorf("failed to find match: %w", err)
	}

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, playerID string, payload json.RawMessage) error {
	var req GamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.coordinator.JoinGame(ctx, req.GameID, playerID); err != nil {
		return fmt.Errorf("failed to join game: %w", err)
	}

	return nil
}

func (that *Server) handleMakeMove(ctx context.Context, playerID string, payload json.RawMessage) error {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.coordinator.MakeMove(ctx, req.GameID, playerID, req.Row, req.Col); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}

func (that *Server) handleForfeitGame(ctx context.Context, playerID string, payload json.RawMessage) error {
	var req GamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.coordinator.Forfeit(ctx, req.GameID, playerID); err != nil {
		return fmt.Errorf("failed to forfeit game: %w", err)
	}

	return nil
}

func (that *Server) handleCancelMatchmaking(_ context.Context, playerID string, _ json.RawMessage) error {
	that.coordinator.CancelMatchmaking(playerID)

	return nil
}
