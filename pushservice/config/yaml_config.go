package config

import "log/slog"

type YamlFCMConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	CredentialsJSON string `yaml:"credentials_json"`
	ServerKey       string `yaml:"server_key"`
	Endpoint        string `yaml:"endpoint"`
}

type YamlExpoConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type YamlRedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	Enabled   bool   `yaml:"enabled"`
	TTLSeconds int   `yaml:"ttl_seconds"`
}

type YamlAuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// YamlConfig is the structure that mirrors the raw local.yaml file.
type YamlConfig struct {
	ProjectID  string          `yaml:"project_id"`
	ListenAddr string          `yaml:"listen_addr"`
	FCM        YamlFCMConfig   `yaml:"fcm"`
	Expo       YamlExpoConfig  `yaml:"expo"`
	Redis      YamlRedisConfig `yaml:"redis"`
	Auth       YamlAuthConfig  `yaml:"auth"`
}

// NewConfigFromYaml converts the YamlConfig into a clean, base Config struct.
func NewConfigFromYaml(baseCfg *YamlConfig, logger *slog.Logger) (*Config, error) {
	logger.Debug("Mapping YAML config to base config struct")

	cfg := &Config{
		ProjectID:  baseCfg.ProjectID,
		ListenAddr: baseCfg.ListenAddr,
		FCM: FCMConfig{
			CredentialsPath: baseCfg.FCM.CredentialsPath,
			CredentialsJSON: baseCfg.FCM.CredentialsJSON,
			ServerKey:       baseCfg.FCM.ServerKey,
			Endpoint:        baseCfg.FCM.Endpoint,
		},
		Expo: ExpoConfig{
			Endpoint: baseCfg.Expo.Endpoint,
		},
		Redis: RedisConfig{
			Addr:       baseCfg.Redis.Addr,
			Password:   baseCfg.Redis.Password,
			DB:         baseCfg.Redis.DB,
			Enabled:    baseCfg.Redis.Enabled,
			TTLSeconds: baseCfg.Redis.TTLSeconds,
		},
		Auth: AuthConfig{
			APIKey: baseCfg.Auth.APIKey,
		},
	}

	logger.Debug("YAML config mapping complete",
		"project_id", cfg.ProjectID,
		"listen_addr", cfg.ListenAddr,
	)

	return cfg, nil
}
