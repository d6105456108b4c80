// Package server provides the HTTP playground: a small API that formats and
// resolves source posted to it, with an HTML page on top.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/pkg/resolve"
	"golang.org/x/sync/errgroup"
)

// Server is the playground server.
type Server struct {
	engine          *engine.Engine
	env             resolve.Env
	addr            string
	shutdownTimeout time.Duration
	maxBodyBytes    int64
	logger          *slog.Logger
}

// Config holds configuration for the playground server.
type Config struct {
	Engine          *engine.Engine
	Env             resolve.Env
	Addr            string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	Logger          *slog.Logger
}

// NewServer creates a new server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return &Server{
		engine:          cfg.Engine,
		env:             cfg.Env,
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		maxBodyBytes:    cfg.MaxBodyBytes,
		logger:          logger,
	}
}

// Handler returns the router with every route and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.requestLogger,
	)
	SetupRoutes(r, NewHandlers(s.engine, s.env, s.maxBodyBytes, s.logger))
	return r
}

// requestLogger logs each request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Serve listens on the configured address and blocks until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting playground", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down playground...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
