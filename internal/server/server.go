// Package server exposes the HTTP surface: the LoL summoner tool
// routes and the WoW character stats proxy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Server is the HTTP service instance
type Server struct {
	httpServer *http.Server
}

// New creates a Server listening on the given port
func New(port int, idx SummonerIndex, stats CharacterStatsFetcher) *Server {
	h := NewHandlers(idx, stats)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tools/lol/summoner/log", h.handleSummonerLog)
	mux.HandleFunc("GET /api/tools/lol/summoner/suggest", h.handleSummonerSuggest)
	mux.HandleFunc("GET /api/wow-character-stats", h.handleWowCharacterStats)
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	handler := corsMiddleware(loggingMiddleware(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the root handler, including middleware. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving requests. It blocks until the listener fails or
// Shutdown is called.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
