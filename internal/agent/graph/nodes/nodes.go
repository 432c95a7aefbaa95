package nodes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/cache"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/conversations"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/fallback"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/generation"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/knowledge"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/metrics"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/prompts"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/suggestions"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/validator"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

// Deps are the collaborators the nodes close over.
type Deps struct {
	Knowledge     *knowledge.Store
	Settings      *knowledge.SettingsStore
	Conversations *conversations.Store
	Generator     *generation.Client
	Cache         *cache.ResponseCache
	Fallback      *fallback.Engine
	Suggestions   *suggestions.Engine
	ResponseTTL   time.Duration
}

// NewInputConverterNode rejects blank input and loads settings, knowledge, and prior history.
func NewInputConverterNode(d *Deps) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.ChatRequest) (*model.TurnState, error) {
		if strings.TrimSpace(in.Message) == "" {
			return nil, model.ErrEmptyInput
		}
		in.Message = strings.TrimSpace(in.Message)

		history, err := d.Conversations.Session(in.SessionToken).History(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("history unavailable; continuing without it")
			history = nil
		}

		return &model.TurnState{
			Request:   in,
			Settings:  d.Settings.Load(ctx),
			Knowledge: d.Knowledge.Load(ctx),
			History:   history,
			Started:   time.Now(),
		}, nil
	})
}

// NewConfiguredCondition routes to generation only when the client is configured.
func NewConfiguredCondition(d *Deps) func(context.Context, *model.TurnState) (string, error) {
	return func(ctx context.Context, s *model.TurnState) (string, error) {
		if d.Generator.IsConfigured(s.Settings) {
			return NodeContextBuilder, nil
		}
		logx.Debug().Msg("generation not configured; using keyword fallback")
		return NodeFallback, nil
	}
}

// NewContextBuilderNode assembles grounding text and renders the instruction block.
func NewContextBuilderNode(d *Deps) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TurnState) (*model.TurnState, error) {
		s.Grounding = prompts.BuildContext(prompts.ContextInput{
			History:            s.History,
			HistoryTurns:       d.Conversations.ContextTurns(),
			PageContent:        s.Request.PageContent,
			IncludePageContent: s.Settings.IncludePageContent,
			Knowledge:          s.Knowledge,
		})
		hasPage := s.Settings.IncludePageContent && strings.TrimSpace(s.Request.PageContent) != ""
		system, err := prompts.RenderSystem(ctx, s.Grounding, hasPage)
		if err != nil {
			// rendering is local; treat failure like any generation failure
			s.GenErr = err
			return s, nil
		}
		s.System = system
		s.CacheKey = cache.Key(s.Request.Message, s.Settings, s.Request.PageContent)
		return s, nil
	})
}

// NewGeneratorNode serves from cache or performs the single provider call.
// Failures are recorded on the state, never returned.
func NewGeneratorNode(d *Deps) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TurnState) (*model.TurnState, error) {
		if s.GenErr != nil {
			return s, nil
		}
		if d.Cache != nil {
			if text, ok := d.Cache.Get(ctx, s.CacheKey); ok {
				s.Response = text
				s.Source = model.SourceCache
				return s, nil
			}
		}
		raw, err := d.Generator.Generate(ctx, generation.Request{
			Settings: s.Settings,
			System:   s.System,
			User:     prompts.UserPrompt(s.Request.Message),
		})
		if err != nil {
			s.GenErr = err
			return s, nil
		}
		s.Raw = raw
		return s, nil
	})
}

// NewGeneratorCondition sends cache hits to the finalizer and failures to the fallback.
func NewGeneratorCondition() func(context.Context, *model.TurnState) (string, error) {
	return func(ctx context.Context, s *model.TurnState) (string, error) {
		switch {
		case s.Source == model.SourceCache:
			return NodeFinalizer, nil
		case s.GenErr != nil:
			recordGenerationError(s.GenErr)
			return NodeFallback, nil
		default:
			return NodeValidator, nil
		}
	}
}

// NewValidatorNode applies the quality gate and caches accepted answers.
func NewValidatorNode(d *Deps) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TurnState) (*model.TurnState, error) {
		res := validator.New(d.Settings.RefusalPatterns(ctx)).Check(s.Raw)
		if !res.Usable {
			s.GenErr = res.Reason
			logx.Warn().Err(res.Reason).Msg("generated response rejected")
			return s, nil
		}
		s.Response = res.Text
		s.Source = model.SourceLLM
		if d.Cache != nil && s.CacheKey != "" {
			d.Cache.Put(ctx, s.CacheKey, res.Text, d.ResponseTTL)
		}
		return s, nil
	})
}

func NewValidatorCondition() func(context.Context, *model.TurnState) (string, error) {
	return func(ctx context.Context, s *model.TurnState) (string, error) {
		if s.Source == model.SourceLLM {
			return NodeFinalizer, nil
		}
		recordGenerationError(s.GenErr)
		return NodeFallback, nil
	}
}

// NewFallbackNode answers deterministically from keywords.
func NewFallbackNode(d *Deps) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TurnState) (*model.TurnState, error) {
		page := s.Request.PageContent
		ans := d.Fallback.Respond(s.Request.Message, page, s.Knowledge)
		s.Response = ans.Text
		s.Topic = ans.Topic
		s.Source = model.SourceFallback
		return s, nil
	})
}

// NewFinalizerNode appends both turns, derives suggestions, and builds the reply.
func NewFinalizerNode(d *Deps) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TurnState) (*model.ChatReply, error) {
		conv := d.Conversations.Session(s.Request.SessionToken)
		if err := conv.AppendUser(ctx, s.Request.Message, s.Request.PageURL, s.Request.PageTitle); err != nil {
			logx.Warn().Err(err).Msg("failed to store user turn")
		}
		if err := conv.AppendBot(ctx, s.Response); err != nil {
			logx.Warn().Err(err).Msg("failed to store bot turn")
		}

		history, err := conv.History(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("history unavailable for suggestions")
			history = nil
		}
		sugg := d.Suggestions.Predict(ctx, history, s.Settings)
		metrics.RecordSuggestions(string(sugg.Source))

		stats, err := conv.Stats(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("session stats unavailable")
		}

		metrics.RecordResponse(string(s.Source), time.Since(s.Started))
		logx.Debug().
			Str("source", string(s.Source)).
			Str("topic", s.Topic).
			Str("category", string(sugg.Category)).
			Dur("elapsed", time.Since(s.Started)).
			Msg("chat turn completed")

		return &model.ChatReply{
			Response:     s.Response,
			Suggestions:  sugg.Suggestions,
			SessionStats: stats,
			Timestamp:    time.Now().UTC(),
			Source:       s.Source,
		}, nil
	})
}

func recordGenerationError(err error) {
	var ge *generation.Error
	switch {
	case err == nil:
	case errors.As(err, &ge):
		metrics.RecordGenerationError(string(ge.Kind))
	case errors.Is(err, model.ErrValidationRejected):
		metrics.RecordGenerationError("validation_rejected")
	default:
		metrics.RecordGenerationError("other")
	}
}
