package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/colorgrid/colorgrid-backend/internal/entity"
	"github.com/colorgrid/colorgrid-backend/internal/matchmaking"
	"github.com/colorgrid/colorgrid-backend/internal/scoring"
	"github.com/google/uuid"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type settlement interface {
	ApplyWin(ctx context.Context, winnerID, loserID string) error
	ApplyDraw(ctx context.Context, playerAID, playerBID string) error
}

// notifier - the outbound side of the real-time channel. Implemented by the
// websocket transport; a send to a player without a live connection is dropped there.
type notifier interface {
	Send(playerID, event string, payload any)
}

// Coordinator - the central actor of the game core. It owns every mutation of
// active game state: pairing players into games, serializing and validating
// moves, scoring filled grids, settling results and driving all broadcasts.
type Coordinator struct {
	logger     *slog.Logger
	games      gameRepo
	players    playerRepo
	settlement settlement
	queue      *matchmaking.Queue
	registry   *Registry
	notifier   notifier

	// matchMu makes the active-session check, the enqueue/dequeue and the
	// registry insert one atomic step. Without it a find_match re-sent while
	// the paired game is still being persisted would slip past the session
	// check and open a second session for the same player.
	matchMu sync.Mutex

	// announceDelay separates match_found from the authoritative game_start.
	announceDelay time.Duration
}

func NewCoordinator(logger *slog.Logger, games gameRepo, players playerRepo, settlement settlement, announceDelay time.Duration) *Coordinator {
	return &Coordinator{
		logger:        logger,
		games:         games,
		players:       players,
		settlement:    settlement,
		queue:         matchmaking.New(),
		registry:      NewRegistry(),
		announceDelay: announceDelay,
	}
}

// SetNotifier - wires the transport in after construction; transport and
// coordinator reference each other, so one side has to come late.
func (that *Coordinator) SetNotifier(n notifier) {
	that.notifier = n
}

// FindMatch - puts playerID into the waiting queue and, when an opponent is
// available, creates the game. Duplicate requests are no-ops.
func (that *Coordinator) FindMatch(ctx context.Context, playerID string) error {
	log := that.logger.With("method", "FindMatch", "playerID", playerID)

	that.matchMu.Lock()
	defer that.matchMu.Unlock()

	if gameID, ok := that.registry.SessionFor(playerID); ok {
		log.Info("player already in an active game", "gameID", gameID)
		return nil
	}

	if !that.queue.Enqueue(playerID) {
		log.Info("player already in matchmaking")
		return nil
	}

	log.Info("player queued for matchmaking", "waiting", that.queue.Len())

	first, second, ok := that.queue.DequeuePair()
	if !ok {
		return nil
	}

	return that.createGame(ctx, first, second)
}

// CancelMatchmaking - removes playerID from the queue. Once paired the entry
// is gone and the game has to be resolved via forfeit instead.
func (that *Coordinator) CancelMatchmaking(playerID string) {
	log := that.logger.With("method", "CancelMatchmaking", "playerID", playerID)

	if that.queue.Cancel(playerID) {
		log.Info("player left matchmaking")
		return
	}

	log.Info("player was not in matchmaking")
}

// Disconnected - transport lost the connection. The player only leaves the
// waiting queue; an in-progress game stays resumable indefinitely.
func (that *Coordinator) Disconnected(playerID string) {
	log := that.logger.With("method", "Disconnected", "playerID", playerID)

	if that.queue.Cancel(playerID) {
		log.Info("removed disconnected player from matchmaking")
	}
}

// JoinGame - a reconnecting participant asks for the authoritative snapshot
// of their running game. Unknown sessions and non-participants are ignored.
func (that *Coordinator) JoinGame(_ context.Context, gameID, playerID string) error {
	log := that.logger.With("method", "JoinGame", "gameID", gameID, "playerID", playerID)

	session, ok := that.registry.Get(gameID)
	if !ok {
		log.Info("join ignored: unknown or inactive game")
		return nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	game := session.game
	if !game.HasPlayer(playerID) {
		log.Info("join ignored: not a participant")
		return nil
	}

	that.send(playerID, EventGameStart, GameStartPayload{
		GameID: game.ID,
		Grid:   game.Grid,
		Turn:   game.Turn,
		ColorA: game.ColorA,
		ColorB: game.ColorB,
	})

	log.Info("resent game snapshot to rejoining player")

	return nil
}

// MakeMove - validates and applies one move under the session lock. Invalid
// commands are discarded silently: logged, no state change, no broadcast.
func (that *Coordinator) MakeMove(ctx context.Context, gameID, playerID string, row, col int) error {
	log := that.logger.With("method", "MakeMove", "gameID", gameID, "playerID", playerID)

	session, ok := that.registry.Get(gameID)
	if !ok {
		log.Info("move ignored: unknown or inactive game")
		return nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	game := session.game

	// A filled in-progress grid means an earlier completion write failed and
	// was rolled back. No further cell can be claimed, so a participant's
	// command retries the completion instead.
	if game.IsInProgress() && game.IsFilled() && game.HasPlayer(playerID) {
		log.Info("grid already full, retrying completion")
		return that.finishByScore(ctx, log, game)
	}

	move, err := game.ApplyMove(playerID, row, col)
	if err != nil {
		log.Info("move rejected", "row", row, "col", col, "reason", err)
		return nil
	}

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		game.RevertMove(move)
		log.Error("failed to persist move, rolled back", "error", err)

		return fmt.Errorf("failed to persist move: %w", err)
	}

	if !game.IsFilled() {
		that.broadcast(game, EventMoveMade, MoveMadePayload{
			GameID:   game.ID,
			Grid:     game.Grid,
			Turn:     game.Turn,
			LastMove: move,
		})

		return nil
	}

	return that.finishByScore(ctx, log, game)
}

// Forfeit - participant-initiated early termination; the opponent wins.
// Repeated forfeits and forfeits against completed games are no-ops.
func (that *Coordinator) Forfeit(ctx context.Context, gameID, playerID string) error {
	log := that.logger.With("method", "Forfeit", "gameID", gameID, "playerID", playerID)

	session, ok := that.registry.Get(gameID)
	if !ok {
		log.Info("forfeit ignored: unknown or inactive game")
		return nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	game := session.game

	if !game.IsInProgress() {
		log.Info("forfeit ignored: game not in progress")
		return nil
	}

	if !game.HasPlayer(playerID) {
		log.Info("forfeit ignored: not a participant")
		return nil
	}

	previousTurn := game.Turn
	game.FinishForfeit(playerID)

	// The broadcast and the coin settlement hang off the durable write, so
	// the completion must be committed before anything becomes visible.
	if err := that.persistCompleted(ctx, game, previousTurn); err != nil {
		log.Error("failed to persist forfeit", "error", err)
		return err
	}

	if err := that.settlement.ApplyWin(ctx, game.Winner, game.Forfeiter); err != nil {
		log.Error("failed to settle forfeit", "error", err)
	}

	that.broadcast(game, EventGameOverForfeit, GameOverForfeitPayload{
		GameID:    game.ID,
		Winner:    game.Winner,
		Forfeiter: game.Forfeiter,
		Result:    game.Result,
		Message: map[string]string{
			game.Winner:    "You won because your opponent forfeited!",
			game.Forfeiter: "You forfeited the game!",
		},
	})
	that.broadcast(game, EventUpdateCoins, nil)

	that.deregister(ctx, game)

	log.Info("game forfeited", "winner", game.Winner)

	return nil
}

func (that *Coordinator) createGame(ctx context.Context, first, second string) error {
	log := that.logger.With("method", "createGame", "playerA", first, "playerB", second)

	game := entity.NewGame(uuid.NewString(), first, second)
	log = log.With("gameID", game.ID)

	if err := that.games.CreateOrUpdate(ctx, game); err != nil {
		log.Error("failed to persist new game", "error", err)
		return fmt.Errorf("failed to persist new game: %w", err)
	}

	that.registry.Add(game)

	for _, player := range []*entity.Player{
		{ID: game.PlayerA, GameID: game.ID, Color: game.ColorA},
		{ID: game.PlayerB, GameID: game.ID, Color: game.ColorB},
	} {
		if err := that.players.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player record", "playerID", player.ID, "error", err)
		}
	}

	that.send(game.PlayerA, EventMatchFound, MatchFoundPayload{
		GameID:   game.ID,
		Opponent: game.PlayerB,
		Color:    game.ColorA,
	})
	that.send(game.PlayerB, EventMatchFound, MatchFoundPayload{
		GameID:   game.ID,
		Opponent: game.PlayerA,
		Color:    game.ColorB,
	})

	time.AfterFunc(that.announceDelay, func() {
		that.announceStart(game.ID)
	})

	log.Info("game created")

	return nil
}

// announceStart - emits the authoritative start snapshot after the announce
// delay. Taken under the session lock: a forfeit inside the delay window
// removes the session and the announcement is dropped.
func (that *Coordinator) announceStart(gameID string) {
	session, ok := that.registry.Get(gameID)
	if !ok {
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	game := session.game
	that.broadcast(game, EventGameStart, GameStartPayload{
		GameID: game.ID,
		Grid:   game.Grid,
		Turn:   game.Turn,
		ColorA: game.ColorA,
		ColorB: game.ColorB,
	})
}

// finishByScore - the grid is full: score both colors, settle, persist and
// broadcast. Caller holds the session lock.
func (that *Coordinator) finishByScore(ctx context.Context, log *slog.Logger, game *entity.Game) error {
	areaA := scoring.LargestRegion(game.Grid, game.ColorA)
	areaB := scoring.LargestRegion(game.Grid, game.ColorB)

	previousTurn := game.Turn
	message := make(map[string]string)

	switch {
	case areaA > areaB:
		game.Finish(entity.ResultPlayerAWin, game.PlayerA)
		message[game.PlayerA] = fmt.Sprintf("You won with the largest connected area of %d cells!", areaA)
		message[game.PlayerB] = fmt.Sprintf("You lost! Opponent had a larger connected area of %d cells.", areaA)
	case areaB > areaA:
		game.Finish(entity.ResultPlayerBWin, game.PlayerB)
		message[game.PlayerA] = fmt.Sprintf("You lost! Opponent had a larger connected area of %d cells.", areaB)
		message[game.PlayerB] = fmt.Sprintf("You won with the largest connected area of %d cells!", areaB)
	default:
		game.Finish(entity.ResultDraw, "")
		text := fmt.Sprintf("It's a draw! Both players have equal connected areas of %d cells.", areaA)
		message[game.PlayerA] = text
		message[game.PlayerB] = text
	}

	if err := that.persistCompleted(ctx, game, previousTurn); err != nil {
		log.Error("failed to persist completed game", "error", err)
		return err
	}

	switch game.Result {
	case entity.ResultDraw:
		if err := that.settlement.ApplyDraw(ctx, game.PlayerA, game.PlayerB); err != nil {
			log.Error("failed to settle draw", "error", err)
		}
	default:
		if err := that.settlement.ApplyWin(ctx, game.Winner, game.Opponent(game.Winner)); err != nil {
			log.Error("failed to settle win", "error", err)
		}
	}

	that.broadcast(game, EventGameEnd, GameEndPayload{
		GameID:  game.ID,
		Grid:    game.Grid,
		Winner:  game.Winner,
		Result:  game.Result,
		AreaA:   areaA,
		AreaB:   areaB,
		ColorA:  game.ColorA,
		ColorB:  game.ColorB,
		Message: message,
	})
	that.broadcast(game, EventUpdateCoins, nil)

	that.deregister(ctx, game)

	log.Info("game completed", "result", game.Result, "areaA", areaA, "areaB", areaB)

	return nil
}

// persistCompleted - commits a terminal state, retrying once. On repeated
// failure the completion is rolled back so it can be reached again later;
// nothing may be broadcast for a completion that is not durable.
func (that *Coordinator) persistCompleted(ctx context.Context, game *entity.Game, previousTurn string) error {
	err := that.games.CreateOrUpdate(ctx, game)
	if err != nil {
		err = that.games.CreateOrUpdate(ctx, game)
	}

	if err != nil {
		game.Status = entity.StatusInProgress
		game.Result = ""
		game.Winner = ""
		game.Forfeiter = ""
		game.Turn = previousTurn

		return fmt.Errorf("failed to persist completed game: %w", err)
	}

	return nil
}

// deregister - drops the finished game from the active set and clears both
// player pointers. The game record itself stays persisted as history.
func (that *Coordinator) deregister(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deregister", "gameID", game.ID)

	that.registry.Remove(game.ID)

	for _, playerID := range []string{game.PlayerA, game.PlayerB} {
		if err := that.players.CreateOrUpdate(ctx, &entity.Player{ID: playerID}); err != nil {
			log.Error("failed to clear player record", "playerID", playerID, "error", err)
		}
	}
}

func (that *Coordinator) broadcast(game *entity.Game, event string, payload any) {
	that.send(game.PlayerA, event, payload)
	that.send(game.PlayerB, event, payload)
}

func (that *Coordinator) send(playerID, event string, payload any) {
	if that.notifier == nil {
		return
	}

	that.notifier.Send(playerID, event, payload)
}
