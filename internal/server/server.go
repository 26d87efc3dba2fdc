package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Server represents the WebSocket server
type Server struct {
	upgrader    websocket.Upgrader
	registry    *Registry
	connections map[*Connection]bool
	logger      *log.Logger
	mu          sync.RWMutex
	mux         *http.ServeMux
}

// NewServer creates a new WebSocket server over a session registry
func NewServer(registry *Registry, logger *log.Logger) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		registry:    registry,
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
		mux:         http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve listens on addr until ctx is cancelled, reaping idle sessions in
// the background.
func (s *Server) Serve(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return s.registry.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down WebSocket server")
		s.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Stop closes every open connection
func (s *Server) Stop() {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// handleWebSocket handles WebSocket upgrade requests. A session query
// parameter resumes an existing session; otherwise a new one is created.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID != "" {
		err = s.registry.Attach(sessionID)
	} else {
		sessionID, err = s.registry.Create()
	}
	if err != nil {
		s.rejectConnection(conn, err)
		return
	}

	client := NewConnection(conn, sessionID, s.registry, s.logger)
	s.register(client)
	client.Start()

	go func() {
		<-client.Done()
		s.unregister(client)
	}()
}

func (s *Server) rejectConnection(conn *websocket.Conn, err error) {
	code := CodeFor(err)
	s.logger.Warn("Rejecting connection", "error", err, "code", code)
	if data, merr := encodeError(code, err.Error()); merr == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, code))
	_ = conn.Close()
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", conn.SessionID(), "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[conn]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()

	s.registry.Detach(conn.SessionID())
	s.logger.Info("Client disconnected", "session", conn.SessionID(), "total", total)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
