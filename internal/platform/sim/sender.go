// Package sim is the no-network delivery path used when no FCM credentials
// are configured. Every target is reported as sent with a synthetic id so
// the system degrades gracefully in environments without production
// credentials.
package sim

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fitpulse/push-service/pkg/push"
)

type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger.With("component", "SimulatedSender")}
}

func (s *Sender) Send(_ context.Context, target push.Target, _ *push.Payloads) push.Outcome {
	id := "sim-" + uuid.NewString()
	s.logger.Debug("simulated send", "target", target.ID(), "message_id", id)
	return push.Sent(target.ID(), id)
}
