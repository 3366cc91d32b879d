package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitpulse/push-service/internal/engine"
)

func TestSelectStrategy(t *testing.T) {
	t.Run("Native SDK wins over server key", func(t *testing.T) {
		assert.Equal(t, engine.StrategyNativeSDK, engine.SelectStrategy(true, "some-key"))
		assert.Equal(t, engine.StrategyNativeSDK, engine.SelectStrategy(true, ""))
	})

	t.Run("Server key without SDK credentials", func(t *testing.T) {
		assert.Equal(t, engine.StrategyServerKey, engine.SelectStrategy(false, "some-key"))
	})

	t.Run("Nothing configured degrades to simulation", func(t *testing.T) {
		assert.Equal(t, engine.StrategySimulated, engine.SelectStrategy(false, ""))
	})
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "native_sdk", engine.StrategyNativeSDK.String())
	assert.Equal(t, "server_key", engine.StrategyServerKey.String())
	assert.Equal(t, "simulated", engine.StrategySimulated.String())
}
