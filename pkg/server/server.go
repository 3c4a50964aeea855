// Package server exposes the sorting trace engine as a JSON HTTP API.
//
// Routes:
//
//	GET    /healthz              build info
//	GET    /v1/bounds/{n}        best and worst merge sort comparisons
//	POST   /v1/count             comparison counts of both sorters
//	POST   /v1/quicksort         complete quicksort trace
//	POST   /v1/compare           comparison sweep report
//	POST   /v1/merge             start a merge sort trace session
//	GET    /v1/merge/{id}        session state
//	POST   /v1/merge/{id}/next   pull one merge event
//	DELETE /v1/merge/{id}        abandon a session
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sorttrace/pkg/session"
	"github.com/matzehuels/sorttrace/pkg/sweep"
)

// Request limits.
const (
	// MaxTraceValues caps arrays sent to the trace endpoints. A quicksort
	// trace of already sorted input holds O(n^2) values.
	MaxTraceValues = 2_000

	maxBodyBytes = 8 << 20
)

// Options configures a Server.
type Options struct {
	Sessions   session.Store
	Sweeps     *sweep.Runner
	Logger     *log.Logger
	SessionTTL time.Duration

	// CleanupInterval is how often ListenAndServe expires idle sessions.
	CleanupInterval time.Duration
}

// Server serves the API.
type Server struct {
	router   chi.Router
	sessions session.Store
	sweeps   *sweep.Runner
	logger   *log.Logger
	ttl      time.Duration
	cleanup  time.Duration
}

// New builds a server. Nil fields in opts get working defaults: an in-memory
// session store, an uncached sweep runner and log.Default().
func New(opts Options) *Server {
	s := &Server{
		sessions: opts.Sessions,
		sweeps:   opts.Sweeps,
		logger:   opts.Logger,
		ttl:      opts.SessionTTL,
		cleanup:  opts.CleanupInterval,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.sessions == nil {
		s.sessions = session.NewMemoryStore()
	}
	if s.sweeps == nil {
		s.sweeps = sweep.NewRunner(nil, nil, s.logger)
	}
	if s.ttl <= 0 {
		s.ttl = session.DefaultTTL
	}
	if s.cleanup <= 0 {
		s.cleanup = time.Minute
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/bounds/{n}", s.handleBounds)
		r.Post("/count", s.handleCount)
		r.Post("/quicksort", s.handleQuicksort)
		r.Post("/compare", s.handleCompare)
		r.Route("/merge", func(r chi.Router) {
			r.Post("/", s.handleMergeStart)
			r.Get("/{id}", s.handleMergeState)
			r.Post("/{id}/next", s.handleMergeNext)
			r.Delete("/{id}", s.handleMergeDelete)
		})
	})
	r.NotFound(s.handleNotFound)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. Expired sessions are removed in the background.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go s.expireSessions(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) expireSessions(ctx context.Context) {
	ticker := time.NewTicker(s.cleanup)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			} else if n > 0 {
				s.logger.Debug("expired sessions", "count", n)
			}
		}
	}
}
