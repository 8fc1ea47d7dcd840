// Package server exposes games to remote players over websockets. The hub
// owns the sessions; each session runs one game between two connections.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"koth/engine"
	"koth/game"
	"koth/replay"
)

// DefaultTurnTimeout is how long a session waits for submissions each turn
// before substituting noops.
const DefaultTurnTimeout = 30 * time.Second

// Hub creates and tracks game sessions.
type Hub struct {
	cfg      game.Config
	timeout  time.Duration
	store    *replay.Store
	logger   zerolog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewHub builds a hub serving games with the given rule set.
func NewHub(cfg game.Config, timeout time.Duration) *Hub {
	return &Hub{
		cfg:      cfg,
		timeout:  timeout,
		logger:   log.With().Str("component", "server").Logger(),
		sessions: make(map[uuid.UUID]*Session),
	}
}

// WithStore archives every session's turns for later replay.
func (h *Hub) WithStore(s *replay.Store) *Hub {
	h.store = s
	return h
}

// Handler returns the HTTP surface: game creation and the per-game
// websocket endpoint.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", h.handleCreate)
	mux.HandleFunc("GET /games/{id}/ws", h.handleJoin)
	return mux
}

type createRequest struct {
	Seed       uint64 `json:"seed"`
	Randomized bool   `json:"randomized"`
}

type createResponse struct {
	ID string `json:"id"`
}

func (h *Hub) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}
	}

	var (
		gs  *game.GameState
		err error
	)
	if req.Randomized {
		gs, err = game.NewRandomizedGame(h.cfg, req.Seed)
	} else {
		gs, err = game.NewGame(h.cfg)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id := uuid.New()
	var sink engine.Sink
	if h.store != nil {
		id, err = h.store.CreateGame(h.cfg, req.Seed, req.Randomized)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to register game in store")
			http.Error(w, "failed to create game", http.StatusInternalServerError)
			return
		}
		sink = h.store.Sink(id)
	}

	session := newSession(id, gs, req.Seed, h.timeout, sink, h.logger)
	h.mu.Lock()
	h.sessions[id] = session
	h.mu.Unlock()
	h.logger.Info().Msgf("created game %s (seed %d)", id, req.Seed)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createResponse{ID: id.String()})
}

func (h *Hub) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "malformed game id", http.StatusBadRequest)
		return
	}
	player, err := game.ParsePlayer(r.URL.Query().Get("player"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	session, ok := h.sessions[id]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "no such game", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // the upgrader already wrote the error response
	}

	c := newClient(session, player, conn)
	go c.writePump()
	if !session.attach(c) {
		c.enqueue(mustEnvelope(TypeError, ErrorPayload{Message: "seat already taken"}))
		c.close()
		return
	}
	go c.readPump()
}
