package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fitpulse/push-service/internal/metrics"
	"github.com/fitpulse/push-service/pkg/push"
)

// Resolver turns a request's target mode into concrete deliverable targets.
type Resolver interface {
	Resolve(ctx context.Context, req *push.Request) (push.ResolvedTarget, error)
}

// Service orchestrates one notify invocation: validate, resolve, build,
// dispatch, aggregate, then prune dead tokens off the response path.
type Service struct {
	resolver Resolver
	engine   *Engine
	pruner   *Pruner
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// background tracks detached prune tasks so shutdown (and tests) can
	// wait for them.
	background sync.WaitGroup
}

func NewService(resolver Resolver, engine *Engine, pruner *Pruner, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		engine:   engine,
		pruner:   pruner,
		metrics:  m,
		logger:   logger.With("component", "NotifyService"),
	}
}

// Notify performs a single dispatch invocation. Request-shape and resolution
// errors are returned; per-target failures are folded into the summary and
// never raised individually.
func (s *Service) Notify(ctx context.Context, req *push.Request) (push.Summary, error) {
	if err := req.Validate(); err != nil {
		return push.Summary{}, err
	}

	resolved, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return push.Summary{}, err
	}

	if resolved.Empty() {
		// An empty explicit token list is not an error; the caller
		// surfaces it as "no recipients".
		s.logger.Info("no recipients resolved, nothing to dispatch")
		s.metrics.RecordNotification("empty")
		return push.Summarize(nil), nil
	}

	payloads := BuildPayloads(req, time.Now())
	outcomes := s.engine.Dispatch(ctx, resolved, payloads)
	summary := push.Summarize(outcomes)

	for _, o := range outcomes {
		s.metrics.RecordOutcome(string(push.ClassifyToken(o.Target)), string(o.Status))
	}
	if summary.Success {
		s.metrics.RecordNotification("success")
	} else {
		s.metrics.RecordNotification("failure")
	}

	s.logger.Info("dispatch complete",
		"sent", summary.Sent,
		"failed", summary.Failed,
		"total", summary.Total,
	)

	// Best-effort cleanup, detached from the response. The prune context
	// outlives the request so an impatient caller cannot cancel it.
	pruneCtx := context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.pruner.Prune(pruneCtx, summary.Results)
	}()

	return summary, nil
}

// Flush blocks until all detached prune tasks have settled.
func (s *Service) Flush() {
	s.background.Wait()
}
