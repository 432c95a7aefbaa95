package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/generation"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/patrickmn/go-cache"
)

const (
	settingsCacheKey = "settings"
	refusalsCacheKey = "refusals"
)

// SettingsStore serves APISettings, falling back to the env seed when nothing is saved.
type SettingsStore struct {
	options  model.OptionRepository
	defaults model.APISettings
	cache    *cache.Cache
	ttl      time.Duration
	hooks    hooks
}

func NewSettingsStore(options model.OptionRepository, defaults model.APISettings, ttl time.Duration) *SettingsStore {
	if defaults.Model == "" {
		defaults.Model = model.DefaultModel
	}
	defaults.Model = generation.NormalizeModel(defaults.Model)
	return &SettingsStore{
		options:  options,
		defaults: defaults,
		cache:    cache.New(ttl, 2*ttl),
		ttl:      ttl,
	}
}

func (s *SettingsStore) OnSave(fn Hook) {
	s.hooks.add(fn)
}

// Load returns the current settings with the model name normalized.
func (s *SettingsStore) Load(ctx context.Context) model.APISettings {
	if v, ok := s.cache.Get(settingsCacheKey); ok {
		return v.(model.APISettings)
	}

	settings := s.defaults
	raw, found, err := s.options.Get(ctx, model.OptionSettings)
	switch {
	case err != nil:
		logx.Warn().Err(err).Msg("settings read failed; using defaults")
		return settings
	case found:
		stored := s.defaults
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			logx.Warn().Err(err).Msg("stored settings are not valid JSON; using defaults")
			return settings
		}
		if stored.Model == "" {
			stored.Model = model.DefaultModel
		}
		stored.Model = generation.NormalizeModel(stored.Model)
		settings = stored
	}

	s.cache.Set(settingsCacheKey, settings, s.ttl)
	return settings
}

// Save validates and persists settings, then fires the save hooks.
func (s *SettingsStore) Save(ctx context.Context, settings model.APISettings) error {
	if settings.Model == "" {
		settings.Model = model.DefaultModel
	}
	settings.Model = generation.NormalizeModel(settings.Model)
	if err := settings.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.options.Set(ctx, model.OptionSettings, string(b)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.cache.Flush()
	s.hooks.fire(ctx)
	logx.Info().Str("model", settings.Model).Bool("enabled", settings.Enabled).Msg("api settings saved")
	return nil
}

// RefusalPatterns returns the saved refusal phrase list, or nil when none is saved.
func (s *SettingsStore) RefusalPatterns(ctx context.Context) []string {
	if v, ok := s.cache.Get(refusalsCacheKey); ok {
		return v.([]string)
	}
	raw, found, err := s.options.Get(ctx, model.OptionRefusals)
	if err != nil {
		logx.Warn().Err(err).Msg("refusal pattern read failed; using built-in list")
		return nil
	}
	var patterns []string
	if found {
		if err := json.Unmarshal([]byte(raw), &patterns); err != nil {
			logx.Warn().Err(err).Msg("refusal patterns are not a JSON string array; using built-in list")
			return nil
		}
	}
	s.cache.Set(refusalsCacheKey, patterns, s.ttl)
	return patterns
}

// SaveRefusalPatterns replaces the refusal phrase list. An empty list restores the built-in one.
func (s *SettingsStore) SaveRefusalPatterns(ctx context.Context, patterns []string) error {
	if len(patterns) == 0 {
		if err := s.options.Delete(ctx, model.OptionRefusals); err != nil {
			return fmt.Errorf("delete refusal patterns: %w", err)
		}
	} else {
		b, err := json.Marshal(patterns)
		if err != nil {
			return fmt.Errorf("marshal refusal patterns: %w", err)
		}
		if err := s.options.Set(ctx, model.OptionRefusals, string(b)); err != nil {
			return fmt.Errorf("save refusal patterns: %w", err)
		}
	}
	s.cache.Delete(refusalsCacheKey)
	s.hooks.fire(ctx)
	return nil
}

// Invalidate drops every cached value.
func (s *SettingsStore) Invalidate() {
	s.cache.Flush()
}
