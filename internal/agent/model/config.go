package model

import "time"

// ================ Config ================
type ConversationConfig struct {
	MaxTurns     int           `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
	ContextTurns int           `envconfig:"CONVERSATION_CONTEXT_TURNS" default:"12"`
	TTL          time.Duration `envconfig:"CONVERSATION_TTL" default:"24h"`
}

type CacheConfig struct {
	KnowledgeTTL time.Duration `envconfig:"CACHE_KNOWLEDGE_TTL" default:"30m"`
	SettingsTTL  time.Duration `envconfig:"CACHE_SETTINGS_TTL" default:"30m"`
	ResponseTTL  time.Duration `envconfig:"CACHE_RESPONSE_TTL" default:"1h"`
}

type RateLimitConfig struct {
	Requests int64         `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	Period   time.Duration `envconfig:"RATE_LIMIT_PERIOD" default:"60s"`
}

// GeminiConfig seeds APISettings when nothing has been saved to the option store yet.
type GeminiConfig struct {
	APIKey             string  `envconfig:"GEMINI_API_KEY"`
	Model              string  `envconfig:"GEMINI_MODEL" default:"gemini-1.5-pro"`
	Enabled            bool    `envconfig:"GEMINI_ENABLED" default:"false"`
	BaseURL            string  `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1/models"`
	Backend            string  `envconfig:"GEMINI_BACKEND" default:"rest"`
	Temperature        float64 `envconfig:"GEMINI_TEMPERATURE" default:"0.4"`
	MaxTokens          int     `envconfig:"GEMINI_MAX_TOKENS" default:"800"`
	IncludePageContent bool    `envconfig:"GEMINI_INCLUDE_PAGE_CONTENT" default:"true"`

	// GenAIBaseURL overrides the genai SDK endpoint for the eino backend.
	GenAIBaseURL string `envconfig:"GEMINI_GENAI_BASE_URL"`
}

// Settings converts the env seed into runtime settings.
func (c GeminiConfig) Settings() APISettings {
	return APISettings{
		Enabled:            c.Enabled,
		APIKey:             c.APIKey,
		Model:              c.Model,
		IncludePageContent: c.IncludePageContent,
		Temperature:        c.Temperature,
		MaxTokens:          c.MaxTokens,
	}
}

type TimeoutConfig struct {
	Generation time.Duration `envconfig:"GENERATION_TIMEOUT" default:"20s"`
	Suggestion time.Duration `envconfig:"SUGGESTION_TIMEOUT" default:"10s"`
}
