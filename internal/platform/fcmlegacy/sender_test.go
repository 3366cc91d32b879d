package fcmlegacy_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/push-service/internal/engine"
	"github.com/fitpulse/push-service/internal/platform/fcmlegacy"
	"github.com/fitpulse/push-service/pkg/push"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPayloads() *push.Payloads {
	return engine.BuildPayloads(&push.Request{Title: "T", Body: "B"}, time.Now())
}

func TestLegacySender(t *testing.T) {
	ctx := context.Background()

	t.Run("Token success carries server key header", func(t *testing.T) {
		var auth string
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"success":1,"failure":0,"results":[{"message_id":"0:123"}]}`))
		}))
		defer srv.Close()

		sender := fcmlegacy.NewSender("server-key-1", srv.URL, newTestLogger())
		outcome := sender.Send(ctx, push.Target{Token: "tok-1"}, testPayloads())

		assert.Equal(t, push.StatusSent, outcome.Status)
		assert.Equal(t, "0:123", outcome.MessageID)
		assert.Equal(t, "key=server-key-1", auth)
		assert.Equal(t, "tok-1", got["to"])
	})

	t.Run("NotRegistered is permanently invalid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":0,"failure":1,"results":[{"error":"NotRegistered"}]}`))
		}))
		defer srv.Close()

		sender := fcmlegacy.NewSender("k", srv.URL, newTestLogger())
		outcome := sender.Send(ctx, push.Target{Token: "deadtok"}, testPayloads())

		assert.Equal(t, push.StatusFailed, outcome.Status)
		assert.Equal(t, push.ErrorClassInvalidToken, outcome.ErrorClass)
	})

	t.Run("Unknown result error is rejected, not invalid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":0,"failure":1,"results":[{"error":"MessageTooBig"}]}`))
		}))
		defer srv.Close()

		sender := fcmlegacy.NewSender("k", srv.URL, newTestLogger())
		outcome := sender.Send(ctx, push.Target{Token: "tok-1"}, testPayloads())

		assert.Equal(t, push.ErrorClassRejected, outcome.ErrorClass)
	})

	t.Run("Topic send uses the topics form", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"message_id":7023997861567816000}`))
		}))
		defer srv.Close()

		sender := fcmlegacy.NewSender("k", srv.URL, newTestLogger())
		outcome := sender.Send(ctx, push.Target{Topic: "general"}, testPayloads())

		assert.Equal(t, push.StatusSent, outcome.Status)
		assert.Equal(t, "/topics/general", got["to"])
	})

	t.Run("Auth rejection is not transport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		sender := fcmlegacy.NewSender("bad-key", srv.URL, newTestLogger())
		outcome := sender.Send(ctx, push.Target{Token: "tok-1"}, testPayloads())

		assert.Equal(t, push.StatusFailed, outcome.Status)
		assert.Equal(t, push.ErrorClassRejected, outcome.ErrorClass)
	})

	t.Run("Server error is transport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		sender := fcmlegacy.NewSender("k", srv.URL, newTestLogger())
		outcome := sender.Send(ctx, push.Target{Token: "tok-1"}, testPayloads())

		assert.Equal(t, push.ErrorClassTransport, outcome.ErrorClass)
	})
}
