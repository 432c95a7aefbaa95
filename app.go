package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/cache"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/conversations"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/fallback"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/feedback"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/generation"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/graph"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/graph/nodes"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/knowledge"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/repo"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/suggestions"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

// app holds the wired engine and the storage it owns.
type app struct {
	cfg      AppConfig
	rdb      *redis.Client
	engine   *graph.Engine
	feedback *feedback.Service
}

type stores struct {
	options       model.OptionRepository
	conversations model.ConversationRepository
	feedback      model.FeedbackRepository
}

func newApp(ctx context.Context, cfg AppConfig) (*app, error) {
	a := &app{cfg: cfg}

	var st stores
	switch cfg.StorageDriver {
	case StorageRedis:
		rdb, err := cfg.Redis.New()
		if err != nil {
			return nil, fmt.Errorf("initialise redis: %w", err)
		}
		logx.Info().Msg("connected to redis")
		a.rdb = rdb
		st = stores{
			options:       repo.NewRedisOptionRepository(rdb),
			conversations: repo.NewRedisConversationRepository(rdb, cfg.Conversation.TTL, cfg.Conversation.MaxTurns),
			feedback:      repo.NewRedisFeedbackRepository(rdb),
		}
	default:
		st = stores{
			options:       repo.NewMemoryOptionRepository(),
			conversations: repo.NewMemoryConversationRepository(cfg.Conversation.TTL, cfg.Conversation.MaxTurns),
			feedback:      repo.NewMemoryFeedbackRepository(),
		}
	}

	var provider generation.Provider
	switch cfg.Gemini.Backend {
	case BackendEino:
		provider = generation.NewEinoProvider(cfg.Gemini.GenAIBaseURL)
	default:
		provider = generation.NewRESTProvider(cfg.Gemini.BaseURL, nil)
	}
	client := generation.NewClient(provider, cfg.Timeout.Generation)

	// a typed nil *redis.Client must not reach the cache as a non-nil interface
	var l2 redis.Cmdable
	if a.rdb != nil {
		l2 = a.rdb
	}
	responses := cache.New(cfg.Cache.ResponseTTL, l2)

	settings := knowledge.NewSettingsStore(st.options, cfg.Gemini.Settings(), cfg.Cache.SettingsTTL)
	settings.OnSave(func(ctx context.Context) {
		if err := responses.InvalidateAll(ctx); err != nil {
			logx.Warn().Err(err).Msg("response cache invalidation failed")
		}
	})
	kb := knowledge.NewStore(st.options, cfg.Cache.KnowledgeTTL)
	kb.OnSave(func(ctx context.Context) {
		if err := responses.InvalidateAll(ctx); err != nil {
			logx.Warn().Err(err).Msg("response cache invalidation failed")
		}
	})

	seed := rand.NewSource(time.Now().UnixNano())
	deps := &nodes.Deps{
		Knowledge:     kb,
		Settings:      settings,
		Conversations: conversations.NewStore(st.conversations, cfg.Conversation),
		Generator:     client,
		Cache:         responses,
		Fallback:      fallback.New(rand.New(seed)),
		Suggestions:   suggestions.New(client, rand.New(rand.NewSource(seed.Int63())), cfg.Timeout.Suggestion),
		ResponseTTL:   cfg.Cache.ResponseTTL,
	}

	engine, err := graph.NewEngine(ctx, deps)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build response graph: %w", err)
	}
	a.engine = engine
	a.feedback = feedback.NewService(st.feedback)
	return a, nil
}

// ready pings redis when it is the storage driver.
func (a *app) ready() error {
	if a.rdb == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return a.rdb.Ping(ctx).Err()
}

func (a *app) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			logx.Warn().Err(err).Msg("closing redis client")
		}
	}
}
