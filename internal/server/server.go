// Package server exposes the application's Prometheus collectors over HTTP
// when a metrics address is configured.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bbpcalc/internal/logging"
	"github.com/agbru/bbpcalc/internal/metrics"
)

// shutdownGrace is how long Shutdown waits for in-flight scrapes.
const shutdownGrace = 5 * time.Second

// MetricsServer serves the /metrics endpoint for a metrics registry.
type MetricsServer struct {
	httpServer *http.Server
	logger     logging.Logger
}

// New creates a metrics server bound to addr, serving the collectors of m.
func New(addr string, m *metrics.Metrics, logger logging.Logger) *MetricsServer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))

	return &MetricsServer{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *MetricsServer) Handler() http.Handler { return s.httpServer.Handler }

// Start serves until the listener fails or Shutdown is called. It blocks;
// run it in a goroutine. A closed-server error is reported as nil.
func (s *MetricsServer) Start() error {
	s.logger.Info("metrics server listening", logging.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting briefly for in-flight requests.
func (s *MetricsServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("metrics server shutdown", logging.Err(err))
	}
}
