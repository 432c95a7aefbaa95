package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/validator"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, BackendREST, cfg.Gemini.Backend)
	assert.Equal(t, 20, cfg.Conversation.MaxTurns)
	assert.Equal(t, 12, cfg.Conversation.ContextTurns)
	assert.Equal(t, int64(10), cfg.RateLimit.Requests)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Period)
	assert.Equal(t, 20*time.Second, cfg.Timeout.Generation)
	assert.Equal(t, 0.4, cfg.Gemini.Temperature)
	assert.Equal(t, 800, cfg.Gemini.MaxTokens)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("GEMINI_BACKEND", "eino")
	t.Setenv("CONVERSATION_TTL", "2h")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.StorageDriver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, BackendEino, cfg.Gemini.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Conversation.TTL)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestAskCommand_FallbackWithoutKey(t *testing.T) {
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("GEMINI_ENABLED", "false")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"ask", "hello", "there"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Hello! How can I assist you today?")
	assert.Contains(t, out.String(), "source: fallback")
}

func TestTestAPICommand_NotConfigured(t *testing.T) {
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("GEMINI_ENABLED", "false")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"test-api"})
	assert.Error(t, cmd.Execute())
}

func TestRefusalsCommands(t *testing.T) {
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("STORAGE_DRIVER", "memory")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"knowledge", "refusals", "get"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "# built-in")
	assert.Contains(t, out.String(), validator.DefaultRefusalPatterns[0])

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"knowledge", "refusals", "set", "we do not discuss", " ", "off topic"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "saved 2 refusal phrases\n", out.String())

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"knowledge", "refusals", "set"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "restored built-in refusal phrases\n", out.String())
}
