package engine_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/push-service/internal/engine"
	"github.com/fitpulse/push-service/pkg/push"
)

func TestBuildPayloads(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("Both shapes carry equivalent content", func(t *testing.T) {
		req := &push.Request{
			Title: "New workout plan",
			Body:  "Your coach updated tomorrow's session",
			Data:  map[string]string{"planId": "wk-42"},
		}
		p := engine.BuildPayloads(req, now)

		assert.Equal(t, req.Title, p.Native.Title)
		assert.Equal(t, req.Title, p.Flat.Title)
		assert.Equal(t, req.Body, p.Native.Body)
		assert.Equal(t, req.Body, p.Flat.Body)
		assert.Equal(t, "wk-42", p.Native.Data["planId"])
		assert.Equal(t, "wk-42", p.Flat.Data["planId"])
	})

	t.Run("Dispatch timestamp and source tag injected", func(t *testing.T) {
		p := engine.BuildPayloads(&push.Request{Title: "T", Body: "B"}, now)

		wantTS := strconv.FormatInt(now.UnixMilli(), 10)
		assert.Equal(t, wantTS, p.Native.Data["dispatchedAt"])
		assert.Equal(t, wantTS, p.Flat.Data["dispatchedAt"])
		assert.Equal(t, "fitpulse-coach", p.Native.Data["source"])
		assert.Equal(t, "fitpulse-coach", p.Flat.Data["source"])
	})

	t.Run("Request data is not mutated", func(t *testing.T) {
		req := &push.Request{Title: "T", Body: "B", Data: map[string]string{"k": "v"}}
		_ = engine.BuildPayloads(req, now)

		require.Len(t, req.Data, 1)
		assert.NotContains(t, req.Data, "dispatchedAt")
	})

	t.Run("Image present lands in both shapes", func(t *testing.T) {
		req := &push.Request{Title: "T", Body: "B", ImageURL: "https://cdn.example.com/meal.png"}
		p := engine.BuildPayloads(req, now)

		assert.Equal(t, req.ImageURL, p.Native.ImageURL)
		require.NotNil(t, p.Flat.RichContent)
		assert.Equal(t, req.ImageURL, p.Flat.RichContent["image"])
	})

	t.Run("Image absent means fields omitted entirely", func(t *testing.T) {
		p := engine.BuildPayloads(&push.Request{Title: "T", Body: "B"}, now)

		assert.Empty(t, p.Native.ImageURL)
		assert.Nil(t, p.Flat.RichContent)
	})
}
