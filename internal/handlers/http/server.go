// Package http exposes the activity scanner over HTTP.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	defaultRequestTimeout  = 25 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

type Server struct {
	scanner        activityscan.Service
	requestTimeout time.Duration
	server         *http.Server
}

// Handler returns the router serving every route of the server.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(withRequestLogging)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/activity", s.handleActivity).Methods(http.MethodGet)
	r.HandleFunc("/api/blockAuthors", s.handleActivity).Methods(http.MethodGet)

	return r
}

// Serve listens until ctx ends, then shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "http server listening", "addr", s.server.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info(ctx, "http server stopped")
	return nil
}

type config struct {
	requestTimeout time.Duration
}

type Option func(*config)

func NewServer(scanner activityscan.Service, addr string, opts ...Option) *Server {
	cfg := config{
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		scanner:        scanner,
		requestTimeout: cfg.requestTimeout,
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// WithRequestTimeout bounds every scan request. A scan that reaches the
// bound returns a partial report with hasMore set.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}
