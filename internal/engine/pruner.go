package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fitpulse/push-service/internal/metrics"
	"github.com/fitpulse/push-service/pkg/dispatch"
	"github.com/fitpulse/push-service/pkg/push"
)

// Pruner retires tokens the providers reported as permanently dead. Each
// deactivation is an independent, idempotent write; failures are logged and
// never raised to the caller.
type Pruner struct {
	store   dispatch.TokenStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewPruner(store dispatch.TokenStore, m *metrics.Metrics, logger *slog.Logger) *Pruner {
	return &Pruner{
		store:   store,
		metrics: m,
		logger:  logger.With("component", "TokenPruner"),
	}
}

// Prune issues one active=false write per outcome classified as permanently
// invalid. Topic outcomes and transport failures are skipped. The caller
// runs this detached from the response path.
func (p *Pruner) Prune(ctx context.Context, outcomes []push.Outcome) {
	for _, o := range outcomes {
		if o.ErrorClass != push.ErrorClassInvalidToken {
			continue
		}
		if strings.HasPrefix(o.Target, "topic:") {
			continue
		}
		if err := p.store.SetTokenActive(ctx, o.Target, false); err != nil {
			p.logger.Warn("failed to deactivate dead token", "token", o.Target, "err", err)
			continue
		}
		p.metrics.RecordPrunedToken()
		p.logger.Info("deactivated dead token", "token", o.Target)
	}
}
