package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/logger"
)

// Timeouts applied to every connection.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second

	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout = 5 * time.Second
)

// Options configures the HTTP server.
type Options struct {
	// Addr is the listen address, e.g. ":3000". Port 0 picks a free port.
	Addr string

	// StaticDir is served at "/" when set.
	StaticDir string

	// RateLimit throttles every request when enabled.
	RateLimit domain.RateLimitSettings
}

// Server serves the REST API.
type Server struct {
	mu       sync.Mutex
	ports    *Ports
	opts     Options
	handler  http.Handler
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewServer creates a server. Nothing listens until Start.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		ports:   ports,
		opts:    opts,
		errChan: make(chan error, 1),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/available-groups", s.handleGroups)
	mux.HandleFunc("GET /api/load", s.handleLoad)
	mux.HandleFunc("PUT /api/save", s.handleSave)
	mux.HandleFunc("GET /api/files", s.handleFiles)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	if s.opts.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.opts.StaticDir)))
	}

	var h http.Handler = mux
	h = withRateLimit(s.opts.RateLimit, h)
	h = withAccessLog(h)
	h = withRequestID(h)
	return withRecover(h)
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.New("server already started")
	}

	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Info("listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.Addr
}

// Run starts the server and blocks until ctx is cancelled or serving
// fails, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return s.Stop()
	case err := <-s.errChan:
		_ = s.Stop()
		return fmt.Errorf("serving: %w", err)
	}
}

// Stop shuts the server down, waiting up to ShutdownTimeout for in-flight
// requests.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}
