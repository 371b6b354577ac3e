// Package web exposes the game over a JSON HTTP API, the backend shape a
// browser or Mini App front-end talks to. Games live in memory; finished
// games are written to the score store.
//
// Routes:
//
//	GET    /health
//	GET    /api/modes
//	GET    /api/words/{word}
//	GET    /api/scores/{mode}
//	POST   /api/games
//	GET    /api/games/{id}
//	DELETE /api/games/{id}
//	POST   /api/games/{id}/place
//	POST   /api/games/{id}/rotate
//	POST   /api/games/{id}/preview
//	POST   /api/games/{id}/select
//	POST   /api/games/{id}/selection/clear
//	POST   /api/games/{id}/submit
//	POST   /api/games/{id}/joker
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/storage"
)

// Default timings of the server.
const (
	DefaultIdleTimeout = 2 * time.Hour
	sweepInterval      = time.Minute
	requestTimeout     = 10 * time.Second
)

// GameFactory creates a fresh game for a mode.
type GameFactory func(mode string, seed int64) (*game.State, error)

// WordChecker answers dictionary lookups for /api/words.
type WordChecker interface {
	Contains(word string) bool
}

// Config holds the dependencies of a Server.
type Config struct {
	NewGame GameFactory
	Words   WordChecker
	// Store keeps finished games; nil disables saving.
	Store *storage.Store
	// IdleTimeout drops games nobody touched for this long.
	IdleTimeout time.Duration
	Logger      *log.Logger
}

// Server bundles the router and the in-memory games.
type Server struct {
	r        *chi.Mux
	cfg      Config
	sessions *sessions
	logger   *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "slovo-api",
		})
	}

	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		sessions: newSessions(),
		logger:   logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(requestTimeout))
	s.r.Use(s.requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": s.sessions.len()})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Get("/words/{word}", s.handleWord)
		r.Get("/scores/{mode}", s.handleScores)

		r.Post("/games", s.handleNewGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.withGame(s.handleGetGame))
			r.Delete("/", s.handleFinish)
			r.Post("/place", s.withGame(s.handlePlace))
			r.Post("/rotate", s.withGame(s.handleRotate))
			r.Post("/preview", s.withGame(s.handlePreview))
			r.Post("/select", s.withGame(s.handleSelect))
			r.Post("/selection/clear", s.withGame(s.handleClearSelection))
			r.Post("/submit", s.withGame(s.handleSubmit))
			r.Post("/joker", s.withGame(s.handleJoker))
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves HTTP on addr until ctx is cancelled, then shuts
// down gracefully and saves the games still in memory.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	for _, sess := range s.sessions.drain() {
		s.finish(sess)
	}
	return err
}

// sweep periodically drops idle games until ctx is done.
func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sess := range s.sessions.prune(s.cfg.IdleTimeout) {
				s.logger.Debug("dropping idle game", "game", sess.id)
				s.finish(sess)
			}
		}
	}
}

// finish saves a game once. Empty games are not recorded.
func (s *Server) finish(sess *session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.saveLocked(sess)
}

// saveLocked writes the game to the store; sess.mu must be held.
func (s *Server) saveLocked(sess *session) {
	st := sess.state
	if sess.saved || s.cfg.Store == nil || st.Score() == 0 {
		return
	}

	rec := storage.GameRecord{
		Mode:  st.Mode().ID,
		Score: st.Score(),
		Seed:  st.Seed(),
	}
	for _, w := range st.Found() {
		rec.Words = append(rec.Words, storage.FoundWord{
			Word:      w.Word,
			Points:    w.Points,
			Direction: string(w.Direction),
		})
	}

	if _, err := s.cfg.Store.SaveGame(rec); err != nil {
		s.logger.Error("cannot save game", "game", sess.id, "error", err)
		return
	}
	sess.saved = true
	s.logger.Info("game saved", "game", sess.id, "mode", rec.Mode, "score", rec.Score, "words", len(rec.Words))
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs every request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
