package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/version"
)

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	CertPath string // TLS certificate; empty serves plain ws://
	KeyPath  string

	// ShutdownTimeout bounds Shutdown when the caller's context has no deadline.
	ShutdownTimeout time.Duration
}

// Server hosts one picker session per WebSocket connection.
type Server struct {
	config    *Config
	tlsConfig *tls.Config
	upgrader  websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener

	wg           sync.WaitGroup
	mu           sync.Mutex
	conns        map[string]*connection // keyed by session id
	shuttingDown bool
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" || config.KeyPath != "" {
		var err error
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	s := &Server{
		config:    config,
		tlsConfig: tlsConfig,
		conns:     make(map[string]*connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Clients are CLIs and scripts, not browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP routes: /ws for sessions and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Listen binds the listening socket and returns its address, so callers can
// learn the port when Config.Port is 0.
func (s *Server) Listen() (net.Addr, error) {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}
	s.listener = ln

	logging.Info("Server listening for connections",
		zap.String("addr", ln.Addr().String()),
		zap.Any("tls", GetTLSInfo(s.tlsConfig)),
		zap.String("version", version.Version),
	)
	return ln.Addr(), nil
}

// Serve accepts connections until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening; call Listen first")
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// ListenAndServe is Listen followed by Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Shutdown stops accepting connections, closes every WebSocket (and with it
// every session) and waits for the handlers to return.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()

	// Hijacked WebSocket connections are not tracked by http.Server.
	if err := s.httpServer.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logging.Error("Error closing listener", zap.Error(err))
	}

	s.mu.Lock()
	for id, c := range s.conns {
		logging.Info("Closing active session", zap.String("session_id", id))
		c.closeWithReason(websocket.CloseGoingAway, "server shutting down")
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All sessions closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return nil
}

// SessionCount returns the number of open sessions
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// register tracks c and adds it to the shutdown wait group. It refuses once
// Shutdown has started so that Wait never races a late Add.
func (s *Server) register(c *connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shuttingDown {
		return false
	}
	s.wg.Add(1)
	s.conns[c.id] = c
	return true
}

func (s *Server) accepting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.shuttingDown
}

func (s *Server) unregister(c *connection) {
	s.mu.Lock()
	delete(s.conns, c.id)
	s.mu.Unlock()
}

// Health is the /healthz body.
type Health struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Version  string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Health{
		Status:   "ok",
		Sessions: s.SessionCount(),
		Version:  version.Version,
	})
}
