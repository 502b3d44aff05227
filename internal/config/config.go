// Package config reads runtime configuration from PACKBOT_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultMaxTurns    = 200
	defaultHTTPTimeout = 60 * time.Second
	defaultLogLevel    = slog.LevelInfo
)

// Config controls the agent-mode run: model endpoint, turn budget, logging.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTurns    int
	HTTPTimeout time.Duration
	LogLevel    slog.Level
}

// Default returns the built-in configuration. The API key has no default;
// agent mode requires it.
func Default() Config {
	return Config{
		Model:       defaultModel,
		BaseURL:     defaultBaseURL,
		MaxTurns:    defaultMaxTurns,
		HTTPTimeout: defaultHTTPTimeout,
		LogLevel:    defaultLogLevel,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset.
func Load() (Config, error) {
	cfg := Default()

	cfg.APIKey = strings.TrimSpace(os.Getenv("PACKBOT_API_KEY"))
	if cfg.APIKey == "" {
		// Accept the conventional variable name of the original tooling too.
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}

	if model := strings.TrimSpace(os.Getenv("PACKBOT_MODEL")); model != "" {
		cfg.Model = model
	}
	if baseURL := strings.TrimSpace(os.Getenv("PACKBOT_BASE_URL")); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if turns := strings.TrimSpace(os.Getenv("PACKBOT_MAX_TURNS")); turns != "" {
		parsed, err := strconv.Atoi(turns)
		if err != nil {
			return Config{}, fmt.Errorf("parse PACKBOT_MAX_TURNS: %w", err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("parse PACKBOT_MAX_TURNS: value must be > 0")
		}
		cfg.MaxTurns = parsed
	}

	if timeout := strings.TrimSpace(os.Getenv("PACKBOT_HTTP_TIMEOUT")); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse PACKBOT_HTTP_TIMEOUT: %w", err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("parse PACKBOT_HTTP_TIMEOUT: value must be > 0")
		}
		cfg.HTTPTimeout = parsed
	}

	if level := strings.TrimSpace(os.Getenv("PACKBOT_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug":
			cfg.LogLevel = slog.LevelDebug
		case "info":
			cfg.LogLevel = slog.LevelInfo
		case "warn", "warning":
			cfg.LogLevel = slog.LevelWarn
		case "error":
			cfg.LogLevel = slog.LevelError
		default:
			return Config{}, fmt.Errorf("parse PACKBOT_LOG_LEVEL: unknown level %q", level)
		}
	}

	return cfg, nil
}
