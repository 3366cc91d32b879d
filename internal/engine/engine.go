// Package engine holds the dispatch core: payload construction, strategy
// selection, the concurrent fan-out engine, aggregation and token pruning.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fitpulse/push-service/pkg/dispatch"
	"github.com/fitpulse/push-service/pkg/push"
)

// Engine fans a built notification out across every resolved target,
// partitioned by provider, and collects per-target outcomes.
type Engine struct {
	fcm    dispatch.Sender
	expo   dispatch.Sender
	logger *slog.Logger
}

// NewEngine wires the two channel senders. The fcm sender is whichever
// delivery path the strategy selected; the expo sender always has exactly
// one path.
func NewEngine(fcm, expo dispatch.Sender, logger *slog.Logger) *Engine {
	return &Engine{
		fcm:    fcm,
		expo:   expo,
		logger: logger.With("component", "DispatchEngine"),
	}
}

// Dispatch issues one independent send per resolved token, or a single topic
// send for topic mode. All sends run concurrently and the engine waits for
// every one to settle; a failing or panicking send never cancels or blocks
// the others. Outcomes carry no ordering guarantee.
func (e *Engine) Dispatch(ctx context.Context, resolved push.ResolvedTarget, payloads *push.Payloads) []push.Outcome {
	// Topic fan-out happens provider-side: exactly one send call.
	if resolved.Topic != "" {
		target := push.Target{Topic: resolved.Topic}
		return []push.Outcome{e.send(ctx, e.fcm, target, payloads)}
	}

	outcomes := make([]push.Outcome, len(resolved.Tokens))
	var wg sync.WaitGroup
	for i, token := range resolved.Tokens {
		sender := e.fcm
		if push.ClassifyToken(token) == push.ProviderExpo {
			sender = e.expo
		}

		wg.Add(1)
		go func(i int, token string, sender dispatch.Sender) {
			defer wg.Done()
			outcomes[i] = e.send(ctx, sender, push.Target{Token: token}, payloads)
		}(i, token, sender)
	}
	wg.Wait()

	return outcomes
}

// send invokes one sender call with bulkhead isolation: a panic inside a
// sender becomes a failed outcome for that target only.
func (e *Engine) send(ctx context.Context, sender dispatch.Sender, target push.Target, payloads *push.Payloads) (outcome push.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("sender panicked", "target", target.ID(), "panic", r)
			outcome = push.Failed(target.ID(), push.ErrorClassTransport, fmt.Errorf("sender panic: %v", r))
		}
	}()
	return sender.Send(ctx, target, payloads)
}
