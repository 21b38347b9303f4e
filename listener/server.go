package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/0xalexb/hjarta-loader/listener/middleware"
)

// ReadHeaderTimeout is the default timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server runs one named HTTP listener in front of a document handler.
type Server struct {
	name       string
	config     Config
	server     *http.Server
	onServeErr func()

	mu       sync.Mutex
	listener net.Listener
}

// NewServer validates cfg, after applying defaults, and prepares an http.Server
// whose handler is wrapped by the middleware chain (see chain).
// onServeErr, when non-nil, runs if serving stops with an unexpected error.
func NewServer(name string, handler http.Handler, cfg Config, onServeErr func()) (*Server, error) {
	switch {
	case name == "":
		return nil, ErrEmptyName
	case handler == nil:
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{ //nolint:exhaustruct // only relevant fields needed
		Addr:              cfg.Address,
		Handler:           chain(handler, cfg),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	return &Server{name: name, config: cfg, server: httpServer, onServeErr: onServeErr}, nil
}

// Addr returns the bound address once started, or the configured one before.
// With port 0 this is how callers learn the chosen port.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return s.config.Address
	}

	return s.listener.Addr().String()
}

// Start binds the TCP listener and serves in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	ln, err := listenCfg.Listen(ctx, "tcp", s.config.Address)
	if err != nil {
		slog.Error("failed to listen", "name", s.name, "address", s.config.Address, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	slog.Info("starting HTTP listener",
		"name", s.name,
		"address", ln.Addr().String(),
		"max_body_bytes", s.config.MaxBodyBytes,
		"handler_timeout", s.config.HandlerTimeout,
	)

	go s.serve(ln)

	return nil
}

func (s *Server) serve(ln net.Listener) {
	err := s.server.Serve(ln)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	slog.Error("HTTP listener error", "name", s.name, "error", err)

	if s.onServeErr != nil {
		s.onServeErr()
	}
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping HTTP listener", "name", s.name)

	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutdown failed", "name", s.name, "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}

// chain wraps handler so that RequestID runs first and MaxRequestSize last.
func chain(handler http.Handler, cfg Config) http.Handler {
	wrapped := middleware.MaxRequestSize(cfg.MaxBodyBytes)(handler)
	wrapped = middleware.Timeout(cfg.HandlerTimeout)(wrapped)
	wrapped = middleware.Recovery()(wrapped)
	wrapped = middleware.Logging()(wrapped)

	return middleware.RequestID()(wrapped)
}
