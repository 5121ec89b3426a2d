package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type coordinator interface {
	FindMatch(ctx context.Context, playerID string) error
	JoinGame(ctx context.Context, gameID, playerID string) error
	MakeMove(ctx context.Context, gameID, playerID string, row, col int) error
	Forfeit(ctx context.Context, gameID, playerID string) error
	CancelMatchmaking(playerID string)
	Disconnected(playerID string)
}

type tokenParser interface {
	ParseToken(token string) (string, error)
}

// connection - one upgraded client socket. Writes go through the mutex so
// coordinator broadcasts never interleave frames.
type connection struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (that *connection) writeJSON(value any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.ws.WriteJSON(value)
}

// Server - the real-time channel. Authenticates each connection through the
// identity gateway before the upgrade, dispatches client commands to the
// coordinator and delivers the coordinator's outbound events.
type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	auth        tokenParser
	upgrader    websocket.Upgrader

	connsMu sync.RWMutex
	conns   map[string]*connection

	handlers map[string]func(ctx context.Context, playerID string, payload json.RawMessage) error
}

func New(logger *slog.Logger, coordinator coordinator, auth tokenParser) *Server {
	server := &Server{
		logger:      logger,
		coordinator: coordinator,
		auth:        auth,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns:    make(map[string]*connection),
		handlers: make(map[string]func(context.Context, string, json.RawMessage) error),
	}

	server.handlers[ActionFindMatch] = server.handleFindMatch
	server.handlers[ActionJoinGame] = server.handleJoinGame
	server.handlers[ActionMakeMove] = server.handleMakeMove
	server.handlers[ActionForfeitGame] = server.handleForfeitGame
	server.handlers[ActionCancelMatchmaking] = server.handleCancelMatchmaking

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - resolves the bearer credential, upgrades and runs the
// read loop until the client goes away.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	playerID, err := that.auth.ParseToken(bearerToken(r))
	if err != nil {
		log.Info("connection refused", "error", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)

		return
	}

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log = log.With("playerID", playerID)
	log.Info("websocket connection established")

	conn := &connection{ws: ws}
	that.register(playerID, conn)

	defer func() {
		_ = ws.Close()
		that.unregister(playerID, conn)
		that.coordinator.Disconnected(playerID)
		log.Info("websocket connection closed")
	}()

	that.readLoop(ctx, log, playerID, ws)
}

func (that *Server) readLoop(ctx context.Context, log *slog.Logger, playerID string, ws *websocket.Conn) {
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}

			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Info("dropping malformed message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Info("dropping unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, playerID, message.Payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// Send - delivers one event to a player. Implements the coordinator's
// notifier; a player without a live connection just misses the event.
func (that *Server) Send(playerID, event string, payload any) {
	that.connsMu.RLock()
	conn, ok := that.conns[playerID]
	that.connsMu.RUnlock()

	if !ok {
		that.logger.Info("no connection for player, dropping event", "playerID", playerID, "event", event)
		return
	}

	if err := conn.writeJSON(Event{Event: event, Payload: payload}); err != nil {
		that.logger.Error("failed to send event", "playerID", playerID, "event", event, "error", err)
	}
}

// register - a newer connection for the same identity replaces the older one.
func (that *Server) register(playerID string, conn *connection) {
	that.connsMu.Lock()
	defer that.connsMu.Unlock()

	if old, ok := that.conns[playerID]; ok {
		_ = old.ws.Close()
	}

	that.conns[playerID] = conn
}

// unregister - removes the mapping unless a newer connection already replaced it.
func (that *Server) unregister(playerID string, conn *connection) {
	that.connsMu.Lock()
	defer that.connsMu.Unlock()

	if current, ok := that.conns[playerID]; ok && current == conn {
		delete(that.conns, playerID)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}

	return r.URL.Query().Get("token")
}
