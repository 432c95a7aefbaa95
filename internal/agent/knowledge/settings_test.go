package knowledge

import (
	"context"
	"testing"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() model.APISettings {
	return model.APISettings{Model: "gemini-pro", Temperature: 0.4, MaxTokens: 800, IncludePageContent: true}
}

func TestSettingsStore_DefaultsAndNormalization(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSettingsStore(repo.NewMemoryOptionRepository(), seed(), time.Minute)

	got := s.Load(ctx)
	assert.Equal(t, "gemini-1.5-pro", got.Model)
	assert.False(t, got.IsConfigured())
}

func TestSettingsStore_SaveValidatesAndFiresHooks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSettingsStore(repo.NewMemoryOptionRepository(), seed(), time.Minute)
	fired := 0
	s.OnSave(func(context.Context) { fired++ })

	bad := seed()
	bad.Temperature = 3
	assert.ErrorIs(t, s.Save(ctx, bad), model.ErrInvalidSettings)
	assert.Zero(t, fired)

	good := model.APISettings{Enabled: true, APIKey: "key-1234", Model: "gemini-ultra", Temperature: 1.2, MaxTokens: 512}
	require.NoError(t, s.Save(ctx, good))
	assert.Equal(t, 1, fired)

	got := s.Load(ctx)
	assert.True(t, got.IsConfigured())
	assert.Equal(t, "gemini-1.5-pro", got.Model)
	assert.InDelta(t, 1.2, got.Temperature, 1e-9)
	assert.Equal(t, 512, got.MaxTokens)
}

func TestSettingsStore_RefusalPatterns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSettingsStore(repo.NewMemoryOptionRepository(), seed(), time.Minute)
	assert.Nil(t, s.RefusalPatterns(ctx))

	require.NoError(t, s.SaveRefusalPatterns(ctx, []string{"no puedo ayudar"}))
	assert.Equal(t, []string{"no puedo ayudar"}, s.RefusalPatterns(ctx))

	require.NoError(t, s.SaveRefusalPatterns(ctx, nil))
	assert.Nil(t, s.RefusalPatterns(ctx))
}

func TestSettingsStore_FailingStoreUsesDefaults(t *testing.T) {
	t.Parallel()

	s := NewSettingsStore(failingOptions{}, seed(), time.Minute)
	got := s.Load(context.Background())
	assert.Equal(t, 800, got.MaxTokens)
	assert.Nil(t, s.RefusalPatterns(context.Background()))
}
