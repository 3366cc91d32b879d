package push_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/push-service/pkg/push"
)

func TestClassifyToken(t *testing.T) {
	t.Run("Expo prefix goes to Expo", func(t *testing.T) {
		assert.Equal(t, push.ProviderExpo, push.ClassifyToken("ExponentPushToken[abc123]"))
		assert.Equal(t, push.ProviderExpo, push.ClassifyToken("ExponentPushToken["))
	})

	t.Run("Everything else goes to FCM", func(t *testing.T) {
		assert.Equal(t, push.ProviderFCM, push.ClassifyToken("dEf4ulT-fcm-registration-token"))
		assert.Equal(t, push.ProviderFCM, push.ClassifyToken("ExpoPushToken[abc]")) // close but not the literal
		assert.Equal(t, push.ProviderFCM, push.ClassifyToken(""))
	})
}

func TestRequestValidate(t *testing.T) {
	valid := func() *push.Request {
		return &push.Request{Title: "T", Body: "B", Tokens: []string{"tok1"}}
	}

	t.Run("Valid request passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("Missing title rejected", func(t *testing.T) {
		req := valid()
		req.Title = "  "
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, push.ErrBadRequest.Has(err))
	})

	t.Run("Missing body rejected", func(t *testing.T) {
		req := valid()
		req.Body = ""
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, push.ErrBadRequest.Has(err))
	})

	t.Run("Missing target rejected", func(t *testing.T) {
		err := (&push.Request{Title: "T", Body: "B"}).Validate()
		require.Error(t, err)
		assert.True(t, push.ErrBadRequest.Has(err))
	})

	t.Run("Empty explicit token list is still token mode", func(t *testing.T) {
		req := &push.Request{Title: "T", Body: "B", Tokens: []string{}}
		require.NoError(t, req.Validate())
	})

	t.Run("Multiple target modes rejected", func(t *testing.T) {
		req := valid()
		req.Topic = "general"
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, push.ErrBadRequest.Has(err))
	})
}

func TestSummarize(t *testing.T) {
	t.Run("Counts add up", func(t *testing.T) {
		outcomes := []push.Outcome{
			push.Sent("tok1", "msg-1"),
			push.Failed("tok2", push.ErrorClassTransport, errors.New("network down")),
			push.Sent("tok3", "msg-3"),
		}
		s := push.Summarize(outcomes)

		assert.Equal(t, 2, s.Sent)
		assert.Equal(t, 1, s.Failed)
		assert.Equal(t, 3, s.Total)
		assert.Equal(t, s.Total, s.Sent+s.Failed)
		assert.Len(t, s.Results, s.Total)
		assert.True(t, s.Success, "partial success is still success")
	})

	t.Run("All failed is failure", func(t *testing.T) {
		s := push.Summarize([]push.Outcome{
			push.Failed("tok1", push.ErrorClassInvalidToken, errors.New("NotRegistered")),
		})
		assert.False(t, s.Success)
		assert.Equal(t, 1, s.Failed)
	})

	t.Run("Zero targets is success", func(t *testing.T) {
		s := push.Summarize(nil)
		assert.True(t, s.Success)
		assert.Equal(t, 0, s.Total)
		assert.Equal(t, 0, s.Sent)
		assert.Equal(t, 0, s.Failed)
	})
}
