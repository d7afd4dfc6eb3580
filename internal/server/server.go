// Package server exposes a board over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridboard/pkg/board"
)

// maxBodyBytes caps request bodies; imported layouts are the largest.
const maxBodyBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

// Server serves one board.
type Server struct {
	board  *board.Board
	logger *log.Logger
	router chi.Router
}

// New creates a server for b. A nil logger means log.Default().
func New(b *board.Board, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{board: b, logger: logger.WithPrefix("http")}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, errNotFound(r.URL.Path))
	})

	r.Get("/healthz", healthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/kinds", s.handleKinds)

		r.Get("/layout", s.handleLayout)
		r.Put("/layout", s.handleImport)
		r.Post("/reflow", s.handleReflow)
		r.Post("/reset", s.handleReset)
		r.Post("/seed", s.handleSeed)

		r.Post("/widgets", s.handleAdd)
		r.Route("/widgets/{id}", func(r chi.Router) {
			r.Get("/", s.handleWidget)
			r.Delete("/", s.handleRemove)
			r.Post("/move", s.handleMove)
			r.Post("/resize", s.handleResize)
			r.Put("/position", s.handleSetPosition)
			r.Put("/size", s.handleSetSize)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "board", s.board.Name())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
