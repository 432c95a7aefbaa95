package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/core"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	pkgredis "github.com/OFTGNOV/Sa-helper-bot/pkg/redis"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	BackendREST = "rest"
	BackendEino = "eino"
)

// AppConfig defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	AdminToken  string `envconfig:"ADMIN_TOKEN"`
	// TrustedProxies is a comma separated list of proxy IPs or CIDRs allowed
	// to set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	// Infrastructure
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	Redis         pkgredis.Config

	// Generation
	Gemini  model.GeminiConfig
	Timeout model.TimeoutConfig

	// Engine
	Conversation model.ConversationConfig
	Cache        model.CacheConfig
	RateLimit    model.RateLimitConfig
}

func loadConfig() (AppConfig, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("process environment config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.Gemini.Backend = strings.ToLower(strings.TrimSpace(cfg.Gemini.Backend))

	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis:
	default:
		return cfg, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	switch cfg.Gemini.Backend {
	case BackendREST, BackendEino:
	default:
		return cfg, fmt.Errorf("unknown GEMINI_BACKEND %q", cfg.Gemini.Backend)
	}
	return cfg, nil
}

func (c AppConfig) env() core.Environment {
	return core.ParseEnvironment(c.Environment)
}

func main() {
	Execute()
}
