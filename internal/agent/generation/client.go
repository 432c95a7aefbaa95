// Package generation talks to the Gemini API. A single call is attempted per
// request; failures come back as *Error and the caller decides what to do.
package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

const DefaultTimeout = 20 * time.Second

// Prompt is a provider-neutral generation request.
type Prompt struct {
	APIKey      string
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Result carries the primary candidate text.
type Result struct {
	Text  string
	Usage *schema.TokenUsage
}

// Provider performs one outbound call.
type Provider interface {
	Generate(ctx context.Context, p Prompt) (*Result, error)
}

// Request is what the engine hands the client.
type Request struct {
	Settings model.APISettings
	System   string
	User     string
	// Timeout overrides the client default when positive.
	Timeout time.Duration
}

type Client struct {
	provider Provider
	timeout  time.Duration
}

func NewClient(provider Provider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{provider: provider, timeout: timeout}
}

// IsConfigured reports whether a call would be attempted for settings.
func (c *Client) IsConfigured(settings model.APISettings) bool {
	return c != nil && c.provider != nil && settings.IsConfigured()
}

// Generate runs one call with a deadline and returns the trimmed text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if !c.IsConfigured(req.Settings) {
		return "", model.ErrNotConfigured
	}

	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	modelName := NormalizeModel(req.Settings.Model)
	if modelName == "" {
		modelName = model.DefaultModel
	}

	start := time.Now()
	res, err := c.provider.Generate(ctx, Prompt{
		APIKey:      req.Settings.APIKey,
		Model:       modelName,
		System:      req.System,
		User:        req.User,
		Temperature: req.Settings.Temperature,
		MaxTokens:   req.Settings.MaxTokens,
	})
	if err != nil {
		err = classify(ctx, err)
		logx.Warn().Err(err).Str("model", modelName).Dur("elapsed", time.Since(start)).Msg("generation call failed")
		return "", err
	}
	if res == nil || strings.TrimSpace(res.Text) == "" {
		return "", &Error{Kind: KindEmptyResponse}
	}

	if res.Usage != nil {
		_, _, total := model.ComputeCost(res.Usage, model.ResolvePricing(modelName))
		logx.Debug().
			Str("model", modelName).
			Int("prompt_tokens", res.Usage.PromptTokens).
			Int("completion_tokens", res.Usage.CompletionTokens).
			Float64("cost_usd", total).
			Dur("elapsed", time.Since(start)).
			Msg("generation usage")
	}
	return strings.TrimSpace(res.Text), nil
}

// classify turns provider failures into *Error.
func classify(ctx context.Context, err error) error {
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindAPI, Err: err}
}
