package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a registry over HTTP on /metrics.
type Server struct {
	port     uint16
	gatherer prometheus.Gatherer
}

func NewServer(port uint16, gatherer prometheus.Gatherer) *Server {
	return &Server{
		port:     port,
		gatherer: gatherer,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	svr := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(ctx, "shutting down metrics server", "error", err)
		}
	}()

	slog.InfoContext(ctx, "serving metrics", "port", s.port)
	err := svr.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving metrics on port %d: %w", s.port, err)
	}
	return nil
}
