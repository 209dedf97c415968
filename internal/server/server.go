// Package server serves the browser front-end. Every websocket connection
// owns one independent typing session driven by a trainer.Loop.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/verte-zerg/typeuber/internal/generator"
	"github.com/verte-zerg/typeuber/internal/session"
	"github.com/verte-zerg/typeuber/internal/theme"
	"github.com/verte-zerg/typeuber/internal/trainer"
)

// DefaultAddr keeps the server on the loopback interface.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 5 * time.Second

//go:embed static/index.html
var indexHTML []byte

// Config configures a Server.
type Config struct {
	Addr  string
	Theme theme.Theme
	// Words returns the word source of a new connection. Nil uses a randomly
	// seeded generator.
	Words func() trainer.WordSource
	// Clock and Scheduler drive session time. Nil uses the wall clock.
	Clock     session.Clock
	Scheduler trainer.Scheduler
}

// Server routes HTTP and websocket traffic.
type Server struct {
	cfg      Config
	logger   *zap.Logger
	router   *mux.Router
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	conns  sync.WaitGroup
}

// New creates a server. Close must be called to end open connections.
func New(cfg Config, logger *zap.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Words == nil {
		cfg.Words = func() trainer.WordSource { return generator.New() }
	}
	if cfg.Clock == nil {
		cfg.Clock = session.SystemClock
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = trainer.SystemScheduler
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/themes", s.handleThemes).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()
	s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))

	select {
	case err := <-errc:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	s.Close()
	<-errc
	if err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close ends every open connection and waits for their sessions to stop.
func (s *Server) Close() {
	s.cancel()
	s.conns.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if _, err := fmt.Fprintln(w, "OK"); err != nil {
		s.logger.Debug("failed to write health response", zap.Error(err))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		s.logger.Debug("failed to write index", zap.Error(err))
	}
}

type themesResponse struct {
	Default theme.Theme                   `json:"default"`
	Order   []theme.Theme                 `json:"order"`
	Themes  map[theme.Theme]theme.Palette `json:"themes"`
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	resp := themesResponse{
		Default: s.cfg.Theme,
		Order:   theme.All(),
		Themes:  make(map[theme.Theme]theme.Palette),
	}
	for _, th := range theme.All() {
		resp.Themes[th] = th.Palette()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Debug("failed to write themes", zap.Error(err))
	}
}
