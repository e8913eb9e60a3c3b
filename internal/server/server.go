// Package server exposes the HTTP endpoint the Dota 2 client pushes
// Game State Integration payloads to, plus liveness, context and
// metrics read surfaces.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dota-gsi-assistant/internal/formatting"
	"dota-gsi-assistant/internal/gamestate"
	"dota-gsi-assistant/internal/metrics"
)

// StateStore is the slice of the game state store the endpoint needs.
type StateStore interface {
	UpdateState(ctx context.Context, partial gamestate.Update) error
	GetState(ctx context.Context) (gamestate.GameState, error)
	MatchID() string
}

// Archiver receives the merged state after every accepted push; it is
// expected to decide for itself whether a snapshot is due.
type Archiver interface {
	Save(ctx context.Context, matchID string, state gamestate.GameState) error
}

type Server struct {
	store          StateStore
	archiver       Archiver // nil when archiving is disabled
	authToken      string
	requestTimeout time.Duration
}

func New(store StateStore, archiver Archiver, authToken string, requestTimeout time.Duration) *Server {
	return &Server{
		store:          store,
		archiver:       archiver,
		authToken:      authToken,
		requestTimeout: requestTimeout,
	}
}

// Handler returns the route table. The game client POSTs to the root
// path; everything else is for local readers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", s.handleUpdate)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /context", s.handleContext)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.UpdatesReceived.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed JSON: %v", err))
		return
	}

	update, authBlock, err := splitPayload(payload)
	if err != nil {
		metrics.UpdatesReceived.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.authToken != "" {
		token, _ := authBlock["token"].(string)
		if token != s.authToken {
			metrics.UpdatesReceived.WithLabelValues("unauthorized").Inc()
			writeError(w, http.StatusUnauthorized, "invalid auth token")
			return
		}
	}

	if update.Empty() {
		slog.Debug("Received empty GSI heartbeat")
		metrics.UpdatesReceived.WithLabelValues("empty").Inc()
		writeJSON(w, http.StatusOK, map[string]string{"status": "empty"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	if err := s.store.UpdateState(ctx, update); err != nil {
		slog.Error("Failed to apply GSI update", "error", err)
		metrics.UpdatesReceived.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.archiver != nil {
		state, err := s.store.GetState(ctx)
		if err == nil && state != nil {
			if err := s.archiver.Save(ctx, s.store.MatchID(), state); err != nil {
				slog.Error("Failed to archive snapshot", "error", err)
			}
		}
	}

	metrics.UpdatesReceived.WithLabelValues("received").Inc()
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "gsi-server",
	})
}

// handleContext renders the current snapshot for a reader (the chat UI
// process polls this per user message).
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	state, err := s.store.GetState(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	text, hero := formatting.Render(state)
	writeJSON(w, http.StatusOK, map[string]string{
		"context": text,
		"hero":    hero,
	})
}

// splitPayload validates the decoded body: every top-level key must be
// a known category (each an object) or the auth block. An unknown key
// means a misconfigured integration file and is rejected outright.
func splitPayload(payload map[string]any) (gamestate.Update, map[string]any, error) {
	update := gamestate.Update{}
	var authBlock map[string]any

	for key, value := range payload {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("category %q is not an object", key)
		}
		if key == "auth" {
			authBlock = obj
			continue
		}
		if !gamestate.KnownCategory(key) {
			return nil, nil, fmt.Errorf("unknown top-level key %q", key)
		}
		update[key] = obj
	}

	return update, authBlock, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
