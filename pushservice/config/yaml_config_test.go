package config_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/push-service/pushservice/config"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewConfigFromYaml(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success - maps all fields correctly", func(t *testing.T) {
		yamlCfg := &config.YamlConfig{
			ProjectID:  "yaml-project",
			ListenAddr: ":9000",
			FCM: config.YamlFCMConfig{
				CredentialsPath: "/secrets/fb.json",
				ServerKey:       "yaml-server-key",
				Endpoint:        "https://fcm.example.test/send",
			},
			Expo: config.YamlExpoConfig{
				Endpoint: "https://expo.example.test/push",
			},
			Redis: config.YamlRedisConfig{
				Addr:       "redis:6379",
				Password:   "pw",
				DB:         2,
				Enabled:    true,
				TTLSeconds: 600,
			},
			Auth: config.YamlAuthConfig{APIKey: "yaml-api-key"},
		}

		cfg, err := config.NewConfigFromYaml(yamlCfg, logger)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "yaml-project", cfg.ProjectID)
		assert.Equal(t, ":9000", cfg.ListenAddr)
		assert.Equal(t, "/secrets/fb.json", cfg.FCM.CredentialsPath)
		assert.Equal(t, "yaml-server-key", cfg.FCM.ServerKey)
		assert.Equal(t, "https://fcm.example.test/send", cfg.FCM.Endpoint)
		assert.Equal(t, "https://expo.example.test/push", cfg.Expo.Endpoint)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 600, cfg.Redis.TTLSeconds)
		assert.Equal(t, "yaml-api-key", cfg.Auth.APIKey)
	})

	t.Run("Success - handles missing optional fields gracefully", func(t *testing.T) {
		yamlCfg := &config.YamlConfig{ProjectID: "minimal-project"}

		cfg, err := config.NewConfigFromYaml(yamlCfg, logger)

		require.NoError(t, err)
		assert.Equal(t, "minimal-project", cfg.ProjectID)
		assert.Empty(t, cfg.ListenAddr)
		assert.Empty(t, cfg.FCM.ServerKey)
		assert.False(t, cfg.Redis.Enabled)
	})
}
