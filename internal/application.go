package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/colorgrid/colorgrid-backend/internal/config"
	"github.com/colorgrid/colorgrid-backend/internal/repository"
	"github.com/colorgrid/colorgrid-backend/internal/repository/storage"
	"github.com/colorgrid/colorgrid-backend/internal/service"
	"github.com/colorgrid/colorgrid-backend/internal/usecase"
	"github.com/colorgrid/colorgrid-backend/transport/rest"
	"github.com/colorgrid/colorgrid-backend/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrSecretNotFound = errors.New("jwt secret key is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	if conf.JWTSecretKey == "" {
		return ErrSecretNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	gameRepo := repository.NewGameRepository(redisStorage)
	playerRepo := repository.NewPlayerRepository(redisStorage)
	userRepo := repository.NewUserRepository(sqliteStorage.Connection)

	settlementService := service.NewSettlementService(logger, userRepo)
	authService := service.NewAuthService(conf.JWTSecretKey)

	announceDelay, err := conf.GetAnnounceDelay()
	if err != nil {
		return fmt.Errorf("could not parse announce delay: %w", err)
	}

	coordinator := usecase.NewCoordinator(logger, gameRepo, playerRepo, settlementService, announceDelay)

	wsServer := websocket.New(logger, coordinator, authService)
	coordinator.SetNotifier(wsServer)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
