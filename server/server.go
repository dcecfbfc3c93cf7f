// Package server exposes a running game over HTTP.
//
// Routes:
//   - GET  /health   liveness probe
//   - GET  /state    current snapshot
//   - GET  /map      every tile of the map
//   - POST /heading  directional input, body {"heading":"up"}
//   - GET  /ws       one snapshot per tick over a WebSocket
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"tile-snake/game"
	"tile-snake/game/types"
)

// Server bundles the router and the scheduler driving the game.
type Server struct {
	r        *chi.Mux
	sched    *game.Scheduler
	validate *validator.Validate
	upgrader websocket.Upgrader
}

type headingRequest struct {
	Heading string `json:"heading" validate:"required,oneof=up right down left"`
}

type mapResponse struct {
	Size  int           `json:"size"`
	Tiles []types.Point `json:"tiles"`
}

func New(sched *game.Scheduler) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		sched:    sched,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/ws", s.handleStream)

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/state", s.handleState)
		r.Get("/map", s.handleMap)
		r.Post("/heading", s.handleHeading)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sched.Game().Snapshot())
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	grid := s.sched.Game().Grid
	writeJSON(w, http.StatusOK, mapResponse{Size: grid.Size, Tiles: grid.Tiles()})
}

func (s *Server) handleHeading(w http.ResponseWriter, r *http.Request) {
	var req headingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_heading")
		return
	}
	dir, err := types.ParseDirection(req.Heading)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_heading")
		return
	}

	g := s.sched.Game()
	if !g.SetHeading(dir) {
		log.Debug().Str("heading", dir.String()).Msg("heading refused")
		writeError(w, http.StatusConflict, "heading_refused")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// handleStream sends the current snapshot, then one per tick until the game
// is over or the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	snaps, unsubscribe := s.sched.Subscribe()
	defer unsubscribe()

	// Reader loop only notices the client closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	current := s.sched.Game().Snapshot()
	if err := conn.WriteJSON(current); err != nil || current.GameOver {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				log.Debug().Err(err).Msg("websocket write failed")
				return
			}
			if snap.GameOver {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
