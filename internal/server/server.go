// Package server exposes the action library and a live capture feed over
// HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/clock"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

// Server is the toca monitor server.
type Server struct {
	httpServer *http.Server
	library    *storage.Library
	hub        *Hub
	clock      clock.Clock
	logger     *slog.Logger
	mux        *http.ServeMux
}

// Options configures New. Library may be nil, in which case the action
// routes report 503.
type Options struct {
	Library *storage.Library
	Hub     *Hub
	Clock   clock.Clock
	Logger  *slog.Logger
}

// New creates a new monitor server.
func New(addr string, opts Options) *Server {
	s := &Server{
		library: opts.Library,
		hub:     opts.Hub,
		clock:   opts.Clock,
		logger:  opts.Logger,
		mux:     http.NewServeMux(),
	}
	if s.clock == nil {
		s.clock = clock.NewRealClock()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.hub == nil {
		s.hub = NewHub(s.logger)
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/actions", s.handleList)
	s.mux.HandleFunc("GET /api/actions/{kind}/{name}", s.handleAction)
	s.mux.HandleFunc("/ws", s.hub.HandleWebSocket)
}

// Handler returns the server's routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return LoggingMiddleware(s.mux, s.logger, s.clock)
}

// Hub returns the live feed hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleRoot serves the monitor page.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(MonitorHTML))
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"time":    s.clock.Now().Format(time.RFC3339),
		"clients": s.hub.ClientCount(),
	})
}

// handleList returns every library entry.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusServiceUnavailable, "no action library configured")
		return
	}
	entries, err := s.library.List(r.Context())
	if err != nil {
		s.logger.Error("listing actions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "listing actions failed")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleAction returns a stored action document.
// Path: /api/actions/{kind}/{name}
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusServiceUnavailable, "no action library configured")
		return
	}
	kind, err := action.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := s.library.Document(r.Context(), kind, r.PathValue("name"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, storage.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("loading action failed", "kind", kind, "name", r.PathValue("name"), "error", err)
		writeError(w, http.StatusInternalServerError, "loading action failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(doc)
}

// Start begins listening. It blocks until the server is shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.StartOnListener(ln)
}

// StartOnListener begins serving on the provided listener.
// Useful for tests that need to pick an ephemeral port.
func (s *Server) StartOnListener(ln net.Listener) error {
	s.logger.Info("toca monitor listening", "addr", ln.Addr().String())
	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server and disconnects monitor
// clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}
