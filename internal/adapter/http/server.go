package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/couchcryptid/nom-chart/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the rendered chart plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu     sync.RWMutex
	page   []byte
	figure []byte

	viewed   chan struct{}
	viewOnce sync.Once
}

// NewServer creates an HTTP server with /, /figure.json, /healthz, /readyz,
// and /metrics routes. The chart routes answer 503 until Publish is called.
func NewServer(addr string, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
		viewed:  make(chan struct{}),
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /figure.json", s.handleFigure)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(s))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Publish sets the page and figure JSON served by the chart routes.
func (s *Server) Publish(page, figure []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	s.figure = figure
}

// CheckReadiness returns nil once a chart has been published.
func (s *Server) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.page == nil {
		return errors.New("no chart published yet")
	}
	return nil
}

// Viewed is closed after the chart page has been served once.
func (s *Server) Viewed() <-chan struct{} {
	return s.viewed
}

// Serve accepts connections on ln. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Debug("http server serving", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()

	if page == nil {
		http.Error(w, "chart not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(page) //nolint:errcheck,gosec // best-effort page response

	s.metrics.PageViews.Inc()
	s.viewOnce.Do(func() { close(s.viewed) })
}

func (s *Server) handleFigure(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	figure := s.figure
	s.mu.RUnlock()

	if figure == nil {
		http.Error(w, "chart not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(figure) //nolint:errcheck,gosec // best-effort figure response
}
