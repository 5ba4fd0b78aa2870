package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonathan/career-mentor/internal/mentor"
	"github.com/jonathan/career-mentor/internal/server/ratelimit"
)

// Server serves the mentor operations over HTTP.
type Server struct {
	httpServer  *http.Server
	svc         *mentor.Service
	rateLimiter *ratelimit.Limiter
	handler     http.Handler
}

// Config holds server configuration
type Config struct {
	Addr      string
	RateLimit float64 // requests per second per client; 0 disables limiting
	RateBurst int
}

// New validates svc and builds the routed, rate-limited handler.
func New(svc *mentor.Service, cfg Config) (*Server, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		svc:         svc,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.RateLimit, cfg.RateBurst)),
	}

	mux := http.NewServeMux()
	for _, rt := range []struct {
		pattern string
		handle  http.HandlerFunc
	}{
		{"GET /health", s.handleHealth},

		{"GET /profiles/{id}", s.handleGetProfile},
		{"PUT /profiles/{id}", s.handlePutProfile},
		{"GET /profiles/{id}/recommendations", s.handleRecommendations},
		{"GET /profiles/{id}/gap", s.handleGap},
		{"POST /profiles/{id}/advice", s.handleAdvice},
		{"POST /profiles/{id}/run", s.handleRun},
		{"POST /profiles/{id}/run/stream", s.handleRunStream},

		{"GET /roles", s.handleListRoles},
		{"GET /roles/{role}", s.handleGetRole},
		{"GET /jobs", s.handleJobs},

		{"POST /feedback", s.handleFeedback},
		{"GET /session/chats", s.handleSessionChats},
		{"GET /session/feedback", s.handleSessionFeedback},
	} {
		mux.HandleFunc(rt.pattern, rt.handle)
	}

	s.handler = chain(mux, s.limitRate, logRequests, cors)
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // advisor calls and streamed runs
		IdleTimeout:  time.Minute,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens for requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.String("addr", s.httpServer.Addr))
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// Close stops background work without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
