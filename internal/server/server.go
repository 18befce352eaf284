// Package server exposes the equity calculator over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-equity/internal/equity"
)

// maxBodySize bounds HTTP request bodies
const maxBodySize = 64 * 1024

// Server represents the HTTP and WebSocket server
type Server struct {
	sim         *equity.Simulator
	upgrader    websocket.Upgrader
	mux         *http.ServeMux
	connections map[*Connection]bool
	logger      *log.Logger
	mu          sync.RWMutex
	wg          sync.WaitGroup
	httpServer  *http.Server
	closing     bool
}

// NewServer creates a server answering requests with sim
func NewServer(sim *equity.Simulator, logger *log.Logger) *Server {
	s := &Server{
		sim: sim,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		mux:         http.NewServeMux(),
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
	}

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ranges", s.handleRanges)
	s.mux.HandleFunc("POST /equity", s.handleEquity)
	s.mux.HandleFunc("POST /rank", s.handleRank)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr and serves until Shutdown is called
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Starting server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes every WebSocket connection and
// waits for in-flight work to finish or ctx to expire. Upgrades that land
// after Shutdown starts are closed immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	srv := s.httpServer
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	// Hijacked connections are not tracked by http.Server
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

// ConnectionCount returns the number of open WebSocket connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// register tracks conn until unregister. It reports false once Shutdown
// has started, in which case the caller owns closing conn.
func (s *Server) register(conn *Connection) bool {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)
	return true
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[conn]; ok {
		delete(s.connections, conn)
		_ = conn.Close() // Ignore close errors during unregistration
	}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client disconnected", "total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.sim, s.logger)
	if !s.register(client) {
		s.logger.Debug("Rejected connection during shutdown")
		_ = client.Close() // Ignore close errors during shutdown
		return
	}
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		defer s.wg.Done()
		<-client.ctx.Done()
		client.wait()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

func (s *Server) handleRanges(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, rangesResult(s.sim))
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	var in EquityRequestData
	if !s.decode(w, r, &in) {
		return
	}

	out, err := equity.Calculate(r.Context(), s.sim, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var in RankRequestData
	if !s.decode(w, r, &in) {
		return
	}

	out, err := equity.RankHand(in.Cards)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorData{
			Code:    CodeInvalidRequest,
			Message: "Failed to parse request body: " + err.Error(),
		})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code, status := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	} else {
		s.logger.Debug("Rejected request", "code", code, "error", err)
	}
	s.writeJSON(w, status, ErrorData{Code: code, Message: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func rangesResult(sim *equity.Simulator) RangesResultData {
	table := sim.Ranges()
	names := table.Names()
	out := RangesResultData{Ranges: make([]RangeInfo, 0, len(names))}
	for _, name := range names {
		hands, _ := table.Hands(name) // name comes from the table itself
		out.Ranges = append(out.Ranges, RangeInfo{
			Name:   name,
			Hands:  hands,
			Combos: table.Size(name),
		})
	}
	return out
}
