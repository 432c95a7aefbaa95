// Package graph composes the response decision engine as an Eino graph and
// exposes the session-level operations the transport needs.
package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/generation"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/graph/nodes"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/metrics"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/prompts"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

type Engine struct {
	deps     *nodes.Deps
	runnable compose.Runnable[model.ChatRequest, *model.ChatReply]
}

// NewEngine compiles the graph over deps.
func NewEngine(ctx context.Context, deps *nodes.Deps) (*Engine, error) {
	r, err := BuildGraph(ctx, deps)
	if err != nil {
		return nil, err
	}
	logx.Debug().Msg("Response graph built successfully")
	return &Engine{deps: deps, runnable: r}, nil
}

// Respond produces the reply for one visitor message. Generation failures never
// surface here; only blank input and graph faults do.
func (e *Engine) Respond(ctx context.Context, req model.ChatRequest) (*model.ChatReply, error) {
	return invoke(ctx, e.runnable, req)
}

// History returns the stored turns and stats for a session.
func (e *Engine) History(ctx context.Context, token string) ([]model.ConversationTurn, model.SessionStats, error) {
	conv := e.deps.Conversations.Session(token)
	stats, err := conv.Stats(ctx)
	if err != nil {
		return nil, model.SessionStats{}, err
	}
	turns, err := conv.History(ctx)
	if err != nil {
		return nil, model.SessionStats{}, err
	}
	return turns, stats, nil
}

// Clear empties the session and rotates its id.
func (e *Engine) Clear(ctx context.Context, token string) (model.SessionStats, error) {
	conv := e.deps.Conversations.Session(token)
	if err := conv.Clear(ctx); err != nil {
		return model.SessionStats{}, err
	}
	return conv.Stats(ctx)
}

// Suggestions returns the initial set when conversationLength is zero and
// history-derived predictions otherwise.
func (e *Engine) Suggestions(ctx context.Context, token string, conversationLength int) []string {
	if conversationLength <= 0 {
		res := e.deps.Suggestions.Initial()
		metrics.RecordSuggestions(string(res.Source))
		return res.Suggestions
	}
	history, err := e.deps.Conversations.Session(token).History(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("history unavailable for suggestions")
	}
	res := e.deps.Suggestions.Predict(ctx, history, e.deps.Settings.Load(ctx))
	metrics.RecordSuggestions(string(res.Source))
	return res.Suggestions
}

// TestConnection performs one generation call grounded on the knowledge base,
// bypassing cache, validation and fallback.
func (e *Engine) TestConnection(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "Hello! Please introduce yourself briefly."
	}
	settings := e.deps.Settings.Load(ctx)
	if !e.deps.Generator.IsConfigured(settings) {
		return "", model.ErrNotConfigured
	}
	grounding := prompts.BuildContext(prompts.ContextInput{Knowledge: e.deps.Knowledge.Load(ctx)})
	system, err := prompts.RenderSystem(ctx, grounding, false)
	if err != nil {
		return "", fmt.Errorf("render instruction: %w", err)
	}
	return e.deps.Generator.Generate(ctx, generation.Request{
		Settings: settings,
		System:   system,
		User:     prompts.UserPrompt(message),
	})
}

// Deps exposes the collaborators for admin wiring.
func (e *Engine) Deps() *nodes.Deps {
	return e.deps
}
