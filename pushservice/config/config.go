// Package config holds the authoritative service configuration: an embedded
// YAML base with environment variable overrides and final validation.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

type FCMConfig struct {
	CredentialsPath string
	CredentialsJSON string
	ServerKey       string
	Endpoint        string
}

// NativeConfigured reports whether admin SDK credentials are available,
// either explicitly or through application default credentials.
func (c FCMConfig) NativeConfigured() bool {
	return c.CredentialsPath != "" || c.CredentialsJSON != "" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
}

type ExpoConfig struct {
	Endpoint string
}

type RedisConfig struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type AuthConfig struct {
	APIKey string
}

// Config defines the *single*, authoritative configuration.
type Config struct {
	ProjectID  string
	ListenAddr string

	FCM   FCMConfig
	Expo  ExpoConfig
	Redis RedisConfig
	Auth  AuthConfig
}

// UpdateConfigWithEnvOverrides applies environment variables and final validation.
func UpdateConfigWithEnvOverrides(cfg *Config, logger *slog.Logger) (*Config, error) {
	logger.Debug("Applying environment variable overrides...")

	if val := os.Getenv("PROJECT_ID"); val != "" {
		logger.Debug("Overriding config value", "key", "PROJECT_ID", "source", "env")
		cfg.ProjectID = val
	}
	if val := os.Getenv("PORT"); val != "" {
		logger.Debug("Overriding config value", "key", "PORT", "source", "env")
		cfg.ListenAddr = ":" + val
	}

	// FCM overrides
	if val := os.Getenv("FCM_CREDENTIALS_PATH"); val != "" {
		cfg.FCM.CredentialsPath = val
	}
	if val := os.Getenv("FCM_CREDENTIALS_JSON"); val != "" {
		cfg.FCM.CredentialsJSON = val
	}
	if val := os.Getenv("FCM_SERVER_KEY"); val != "" {
		cfg.FCM.ServerKey = val
	}
	if val := os.Getenv("EXPO_ENDPOINT"); val != "" {
		cfg.Expo.Endpoint = val
	}

	// Redis overrides
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		cfg.Redis.Addr = val
		cfg.Redis.Enabled = true
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		if db, err := strconv.Atoi(val); err == nil {
			cfg.Redis.DB = db
		}
	}
	if val := os.Getenv("REDIS_ENABLED"); val != "" {
		enabled, _ := strconv.ParseBool(val)
		cfg.Redis.Enabled = enabled
	}

	if val := os.Getenv("API_KEY"); val != "" {
		logger.Debug("Overriding config value", "key", "API_KEY", "source", "env")
		cfg.Auth.APIKey = val
	}

	// Final validation
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("project_id is required (set via YAML or PROJECT_ID env var)")
	}
	if cfg.Auth.APIKey == "" {
		return nil, fmt.Errorf("auth api_key is required (set via YAML or API_KEY env var)")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Redis.TTLSeconds <= 0 {
		cfg.Redis.TTLSeconds = 3600
	}

	logger.Debug("Configuration finalized and validated successfully")
	return cfg, nil
}
