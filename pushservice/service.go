// Package pushservice assembles the HTTP surface of the push dispatch
// service and manages its lifecycle.
package pushservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/fitpulse/push-service/internal/api"
	"github.com/fitpulse/push-service/internal/engine"
	"github.com/fitpulse/push-service/pkg/dispatch"
	"github.com/fitpulse/push-service/pushservice/config"
)

type Service struct {
	server    *http.Server
	notifySvc *engine.Service
	strategy  engine.Strategy
	logger    *slog.Logger
	ready     atomic.Bool
}

// New assembles the service: routes, middleware and the dispatch core.
func New(
	cfg *config.Config,
	notifySvc *engine.Service,
	tokenStore dispatch.TokenStore,
	authMiddleware func(http.Handler) http.Handler,
	strategy engine.Strategy,
	logger *slog.Logger,
) *Service {
	s := &Service{
		notifySvc: notifySvc,
		strategy:  strategy,
		logger:    logger,
	}

	notifyAPI := api.NewNotifyAPI(notifySvc, logger)
	tokenAPI := api.NewTokenAPI(tokenStore, logger)

	mux := http.NewServeMux()

	handle := func(pattern string, handlerFunc http.HandlerFunc) {
		mux.Handle(pattern, authMiddleware(handlerFunc))
	}

	handle("POST /api/v1/notify", notifyAPI.Notify)
	handle("POST /api/v1/tokens/register", tokenAPI.RegisterToken)
	handle("POST /api/v1/tokens/unregister", tokenAPI.UnregisterToken)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /readyz", s.readyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// readyz reports readiness and the delivery strategy in effect, so a
// simulated fallback is visible to operators, not just buried in logs.
func (s *Service) readyz(w http.ResponseWriter, _ *http.Request) {
	code := http.StatusServiceUnavailable
	if s.ready.Load() {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"ready":` + boolString(s.ready.Load()) + `,"strategy":"` + s.strategy.String() + `"}`))
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully, waiting for in-flight requests and detached prune tasks.
func (s *Service) Start(ctx context.Context) error {
	s.ready.Store(true)
	s.logger.Info("Service is now ready.", "addr", s.server.Addr, "strategy", s.strategy.String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})
	return g.Wait()
}

func (s *Service) shutdown() error {
	s.ready.Store(false)
	s.logger.Info("Shutting down service components...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err := s.server.Shutdown(shutdownCtx)

	// Let pending token deactivations land before the process exits.
	s.notifySvc.Flush()

	s.logger.Info("Service shutdown complete.")
	return err
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
