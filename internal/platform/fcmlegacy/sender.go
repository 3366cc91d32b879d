// Package fcmlegacy sends through the legacy FCM HTTP endpoint keyed by a
// server key header. It is the ServerKeyREST delivery path, used when no
// admin SDK credentials are configured.
package fcmlegacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fitpulse/push-service/pkg/push"
)

const DefaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// Error strings the legacy API uses for tokens that will never work again.
var deadTokenErrors = map[string]bool{
	"NotRegistered":       true,
	"InvalidRegistration": true,
	"MismatchSenderId":    true,
}

type Sender struct {
	serverKey string
	endpoint  string
	client    *http.Client
	logger    *slog.Logger
}

func NewSender(serverKey, endpoint string, logger *slog.Logger) *Sender {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Sender{
		serverKey: serverKey,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger.With("component", "FCMLegacySender"),
	}
}

// request is the legacy wire body. Topic targets use the "/topics/" form of
// the to field.
type request struct {
	To           string            `json:"to"`
	Priority     string            `json:"priority,omitempty"`
	Notification map[string]string `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type response struct {
	Success   int   `json:"success"`
	Failure   int   `json:"failure"`
	MessageID int64 `json:"message_id"` // topic sends return only this
	Results   []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

func (s *Sender) Send(ctx context.Context, target push.Target, payloads *push.Payloads) push.Outcome {
	p := &payloads.Native

	to := target.Token
	if target.IsTopic() {
		to = "/topics/" + target.Topic
	}

	notification := map[string]string{
		"title": p.Title,
		"body":  p.Body,
		"sound": p.Android.Sound,
	}
	if p.ImageURL != "" {
		notification["image"] = p.ImageURL
	}

	body, err := json.Marshal(request{
		To:           to,
		Priority:     p.Android.Priority,
		Notification: notification,
		Data:         p.Data,
	})
	if err != nil {
		return push.Failed(target.ID(), push.ErrorClassTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return push.Failed(target.ID(), push.ErrorClassTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("fcm legacy send failed", "target", target.ID(), "err", err)
		return push.Failed(target.ID(), push.ErrorClassTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("fcm legacy: received status %d", resp.StatusCode)
		class := push.ErrorClassTransport
		if resp.StatusCode < 500 {
			class = push.ErrorClassRejected
		}
		return push.Failed(target.ID(), class, err)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return push.Failed(target.ID(), push.ErrorClassTransport, err)
	}

	if target.IsTopic() {
		return push.Sent(target.ID(), strconv.FormatInt(out.MessageID, 10))
	}

	if len(out.Results) == 0 {
		return push.Failed(target.ID(), push.ErrorClassRejected, fmt.Errorf("fcm legacy: empty results"))
	}
	result := out.Results[0]
	if result.Error != "" {
		class := push.ErrorClassRejected
		if deadTokenErrors[result.Error] {
			class = push.ErrorClassInvalidToken
		}
		s.logger.Warn("fcm legacy rejected token", "target", target.ID(), "code", result.Error)
		return push.Failed(target.ID(), class, fmt.Errorf("fcm legacy: %s", result.Error))
	}
	return push.Sent(target.ID(), result.MessageID)
}
