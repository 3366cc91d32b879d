package main

import (
	"context"
	_ "embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/fitpulse/push-service/internal/api"
	"github.com/fitpulse/push-service/internal/engine"
	"github.com/fitpulse/push-service/internal/metrics"
	"github.com/fitpulse/push-service/internal/platform/expo"
	"github.com/fitpulse/push-service/internal/platform/fcm"
	"github.com/fitpulse/push-service/internal/platform/fcmlegacy"
	"github.com/fitpulse/push-service/internal/platform/sim"
	"github.com/fitpulse/push-service/internal/resolve"
	"github.com/fitpulse/push-service/internal/storage/cache"
	fsStore "github.com/fitpulse/push-service/internal/storage/firestore"
	"github.com/fitpulse/push-service/pkg/dispatch"
	"github.com/fitpulse/push-service/pushservice"
	"github.com/fitpulse/push-service/pushservice/config"
)

//go:embed local.yaml
var configFile []byte

func main() {
	var logLevel slog.Level
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "DEBUG":
		logLevel = slog.LevelDebug
	case "warn", "WARN":
		logLevel = slog.LevelWarn
	case "error", "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})).With("service", "push-service")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Config Loading ---
	var yamlCfg config.YamlConfig
	if err := yaml.Unmarshal(configFile, &yamlCfg); err != nil {
		logger.Error("Failed to unmarshal embedded yaml config", "err", err)
		os.Exit(1)
	}
	baseCfg, _ := config.NewConfigFromYaml(&yamlCfg, logger)
	cfg, err := config.UpdateConfigWithEnvOverrides(baseCfg, logger)
	if err != nil {
		logger.Error("Config failed", "err", err)
		os.Exit(1)
	}

	m := metrics.New()

	// --- Stores ---
	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		logger.Error("Firestore client failed", "err", err)
		os.Exit(1)
	}
	defer fsClient.Close()

	store := fsStore.NewStore(fsClient)
	var tokenStore dispatch.TokenStore = store
	logger.Info("TokenStore initialized", "type", "firestore")

	if cfg.Redis.Enabled {
		logger.Info("Initializing Redis cache layer...", "addr", cfg.Redis.Addr)
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		tokenStore = cache.NewCachedTokenStore(tokenStore, redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		logger.Info("TokenStore upgraded", "type", "redis_cached_firestore")
	}

	// --- Delivery strategy & senders ---
	// The strategy is evaluated once here and reported loudly: "no real
	// provider configured" must be an observable condition, not a hidden
	// behavior discovered after deliveries silently succeed.
	strategy := engine.SelectStrategy(cfg.FCM.NativeConfigured(), cfg.FCM.ServerKey)
	m.SetStrategy(strategy.String())

	var fcmSender dispatch.Sender
	switch strategy {
	case engine.StrategyNativeSDK:
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, firebaseOptions(cfg.FCM)...)
		if err != nil {
			logger.Error("Failed to initialize Firebase App", "err", err)
			os.Exit(1)
		}
		messagingClient, err := fbApp.Messaging(ctx)
		if err != nil {
			logger.Error("Failed to create FCM messaging client", "err", err)
			os.Exit(1)
		}
		fcmSender = fcm.NewSender(messagingClient, logger)
		logger.Info("FCM delivery path selected", "strategy", strategy.String())
	case engine.StrategyServerKey:
		fcmSender = fcmlegacy.NewSender(cfg.FCM.ServerKey, cfg.FCM.Endpoint, logger)
		logger.Info("FCM delivery path selected", "strategy", strategy.String())
	default:
		fcmSender = sim.NewSender(logger)
		logger.Warn("No FCM credentials configured; dispatches will be SIMULATED and report synthetic success",
			"strategy", strategy.String())
	}

	expoSender := expo.NewSender(cfg.Expo.Endpoint, logger)

	// --- Dispatch core ---
	resolver := resolve.NewResolver(store, tokenStore, logger)
	dispatchEngine := engine.NewEngine(fcmSender, expoSender, logger)
	pruner := engine.NewPruner(tokenStore, m, logger)
	notifySvc := engine.NewService(resolver, dispatchEngine, pruner, m, logger)

	// --- HTTP service ---
	authMiddleware := api.NewStaticKeyAuthMiddleware(cfg.Auth.APIKey)
	service := pushservice.New(cfg, notifySvc, tokenStore, authMiddleware, strategy, logger)

	logger.Info("Starting service...")
	if err := service.Start(ctx); err != nil {
		logger.Error("Service shutdown with error", "err", err)
		os.Exit(1)
	}
}

func firebaseOptions(cfg config.FCMConfig) []option.ClientOption {
	switch {
	case cfg.CredentialsPath != "":
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath)}
	case cfg.CredentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))}
	default:
		return nil // application default credentials
	}
}
