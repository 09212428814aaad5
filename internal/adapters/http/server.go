// Package http serves the bridge's operational endpoints: health, build
// info and Prometheus metrics. The bridge itself speaks KQML over TCP; this
// server is for operators only.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fdurupinar/bioagents"
	"github.com/fdurupinar/bioagents/internal/logging"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// StatusSource reports the state of the running session.
type StatusSource interface {
	ID() string
	State() domain.SessionState
	UtteranceCount() int64
}

// Pinger is implemented by dependencies that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies of the ops endpoints. Any field may be nil.
type Server struct {
	Session  StatusSource
	Cache    Pinger
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewHandler builds the ops router.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Gatherer == nil {
		s.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// GetHealth reports 200 while the session is alive and the cache (if any)
// is reachable, 503 otherwise.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	status := http.StatusOK

	if s.Session != nil {
		state := s.Session.State()
		resp["session_id"] = s.Session.ID()
		resp["state"] = state
		resp["utterances"] = s.Session.UtteranceCount()
		if state.IsTerminal() {
			status = http.StatusServiceUnavailable
		}
	}
	if s.Cache != nil {
		if err := s.Cache.Ping(r.Context()); err != nil {
			resp["cache"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp["cache"] = "ok"
		}
	}
	if status != http.StatusOK {
		resp["status"] = "unavailable"
	}

	s.writeJSON(w, status, resp)
}

// GetInfo reports build information.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "bsb",
		"version": strings.TrimSpace(bioagents.Version),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("ops response encode failed", "error", err)
	}
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("ops server listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		logger.Info("ops server stopped")
		return nil
	}
}
