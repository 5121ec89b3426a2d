package apperror

import "errors"

var (
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell coordinates")
	ErrNotParticipant    = errors.New("player is not a participant of this game")
	ErrInvalidToken      = errors.New("invalid auth token")
)
