package model

import (
	"fmt"
	"strings"
)

const DefaultModel = "gemini-1.5-pro"

// APISettings controls the Generation Client. Stored as JSON in the option store.
type APISettings struct {
	Enabled            bool    `json:"enabled"`
	APIKey             string  `json:"api_key"`
	Model              string  `json:"model"`
	IncludePageContent bool    `json:"include_page_content"`
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"max_tokens"`
}

// IsConfigured reports whether generation should be attempted.
func (s APISettings) IsConfigured() bool {
	return s.Enabled && strings.TrimSpace(s.APIKey) != ""
}

// Validate checks ranges. It does not touch the model name.
func (s APISettings) Validate() error {
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("%w: temperature %.2f outside [0,2]", ErrInvalidSettings, s.Temperature)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive", ErrInvalidSettings)
	}
	return nil
}

// MaskedKey renders the API key for display, keeping the last four characters.
func (s APISettings) MaskedKey() string {
	key := strings.TrimSpace(s.APIKey)
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return "****" + key[len(key)-4:]
}
