package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-node-preview/internal/api"
	"github.com/aescanero/dago-node-preview/internal/config"
	"github.com/aescanero/dago-node-preview/internal/preview"
	"github.com/aescanero/dago-node-preview/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting preview worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	service, err := preview.NewService(preview.Options{
		Gate:             cfg.RenderGate,
		MaxTemplateBytes: cfg.MaxTemplateBytes,
		PatternCacheSize: cfg.PatternCacheSize,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize preview service", zap.Error(err))
	}
	logger.Info("preview service initialized", zap.String("render_gate", cfg.RenderGate))

	var (
		redisClient *redis.Client
		w           *worker.Worker
		pinger      api.Pinger
	)

	if cfg.WorkerEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		pinger = redisClient

		w = worker.NewWorker(cfg, redisClient, service, logger)
		if err := w.Start(); err != nil {
			logger.Fatal("failed to start worker", zap.Error(err))
		}
	} else {
		logger.Warn("stream worker disabled, serving http api only")
	}

	server := api.NewServer(cfg.HTTPPort, service, pinger, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("failed to start http server", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("preview worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(); err != nil {
		logger.Error("failed to stop http server", zap.Error(err))
	}

	if w != nil {
		if err := w.Stop(shutdownCtx); err != nil {
			logger.Error("failed to stop worker", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close redis connection", zap.Error(err))
		}
	}

	logger.Info("preview worker stopped")
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
