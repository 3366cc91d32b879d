// Package expo sends through the Expo push endpoint: a single flat JSON
// object per token. Expo has no topic concept and exactly one delivery path.
package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fitpulse/push-service/pkg/push"
)

const DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

type Sender struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewSender(endpoint string, logger *slog.Logger) *Sender {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Sender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With("component", "ExpoSender"),
	}
}

// ticket is Expo's per-message receipt.
type ticket struct {
	Status  string `json:"status"`
	ID      string `json:"id"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type response struct {
	Data   ticket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (s *Sender) Send(ctx context.Context, target push.Target, payloads *push.Payloads) push.Outcome {
	if target.IsTopic() {
		// Topic-mode requests never reach this channel; the engine
		// routes them to FCM.
		return push.Failed(target.ID(), push.ErrorClassRejected, fmt.Errorf("expo: topics are not supported"))
	}

	flat := payloads.Flat
	flat.To = target.Token

	body, err := json.Marshal(flat)
	if err != nil {
		return push.Failed(target.ID(), push.ErrorClassTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return push.Failed(target.ID(), push.ErrorClassTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("expo send failed", "target", target.ID(), "err", err)
		return push.Failed(target.ID(), push.ErrorClassTransport, err)
	}
	defer resp.Body.Close()

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return push.Failed(target.ID(), push.ErrorClassTransport, fmt.Errorf("expo: decoding response: %w", err))
	}

	if len(out.Errors) > 0 {
		e := out.Errors[0]
		class := push.ErrorClassRejected
		if isDeadToken(e.Code, e.Message) {
			class = push.ErrorClassInvalidToken
		}
		return push.Failed(target.ID(), class, fmt.Errorf("expo: %s: %s", e.Code, e.Message))
	}

	if resp.StatusCode >= 400 {
		return push.Failed(target.ID(), push.ErrorClassTransport, fmt.Errorf("expo: received status %d", resp.StatusCode))
	}

	if out.Data.Status != "ok" {
		class := push.ErrorClassRejected
		if isDeadToken(out.Data.Details.Error, out.Data.Message) {
			class = push.ErrorClassInvalidToken
		}
		s.logger.Warn("expo rejected token", "target", target.ID(), "error", out.Data.Details.Error)
		return push.Failed(target.ID(), class, fmt.Errorf("expo: %s", out.Data.Message))
	}

	return push.Sent(target.ID(), out.Data.ID)
}

// isDeadToken recognizes Expo's permanent-invalidity markers: the
// DeviceNotRegistered code family and invalid-token validation messages.
func isDeadToken(code, message string) bool {
	if code == "DeviceNotRegistered" {
		return true
	}
	return strings.Contains(message, "is not a registered push notification recipient") ||
		strings.Contains(message, "InvalidToken")
}
