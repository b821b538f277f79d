package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the preview worker
type Config struct {
	// Worker configuration
	WorkerID      string `env:"WORKER_ID" envDefault:"preview-1"`
	WorkerEnabled bool   `env:"WORKER_ENABLED" envDefault:"true"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	StreamKey     string        `env:"STREAM_KEY" envDefault:"preview.work"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"preview-workers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"preview.rendered"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`

	// Rendering configuration
	RenderGate       string `env:"RENDER_GATE" envDefault:"report.valid"`
	MaxTemplateBytes int    `env:"MAX_TEMPLATE_BYTES" envDefault:"1048576"`
	PatternCacheSize int    `env:"PATTERN_CACHE_SIZE" envDefault:"1024"`

	// HTTP configuration
	HTTPPort int `env:"HTTP_PORT" envDefault:"8082"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.WorkerID == "" {
		return fmt.Errorf("WORKER_ID is required")
	}

	// Redis is only needed when the stream worker runs
	if c.WorkerEnabled {
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}

		if c.StreamKey == "" {
			return fmt.Errorf("STREAM_KEY is required")
		}

		if c.ConsumerGroup == "" {
			return fmt.Errorf("CONSUMER_GROUP is required")
		}

		if c.ResultStream == "" {
			return fmt.Errorf("RESULT_STREAM is required")
		}

		if c.BlockTime <= 0 {
			return fmt.Errorf("BLOCK_TIME must be positive")
		}
	}

	if c.RenderGate == "" {
		return fmt.Errorf("RENDER_GATE is required")
	}

	if c.MaxTemplateBytes <= 0 {
		return fmt.Errorf("MAX_TEMPLATE_BYTES must be positive")
	}

	if c.PatternCacheSize <= 0 {
		return fmt.Errorf("PATTERN_CACHE_SIZE must be positive")
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{WorkerID=%s, WorkerEnabled=%v, RedisAddr=%s, RedisDB=%d, StreamKey=%s, ConsumerGroup=%s, "+
			"ResultStream=%s, RenderGate=%q, MaxTemplateBytes=%d, HTTPPort=%d, LogLevel=%s}",
		c.WorkerID,
		c.WorkerEnabled,
		c.RedisAddr,
		c.RedisDB,
		c.StreamKey,
		c.ConsumerGroup,
		c.ResultStream,
		c.RenderGate,
		c.MaxTemplateBytes,
		c.HTTPPort,
		c.LogLevel,
	)
}
