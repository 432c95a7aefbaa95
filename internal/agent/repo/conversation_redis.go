package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type RedisConversationRepository struct {
	rdb      redis.Cmdable
	ttl      time.Duration
	maxTurns int
}

func NewRedisConversationRepository(rdb redis.Cmdable, ttl time.Duration, maxTurns int) *RedisConversationRepository {
	return &RedisConversationRepository{rdb: rdb, ttl: ttl, maxTurns: maxTurns}
}

func conversationKey(token string) string {
	return fmt.Sprintf("conversation:%s:turns", token)
}

func sessionMetaKey(token string) string {
	return fmt.Sprintf("conversation:%s:meta", token)
}

func (r *RedisConversationRepository) Append(ctx context.Context, token string, turn model.ConversationTurn) error {
	b, err := json.Marshal(turn)
	if err != nil {
		logx.Error().Err(err).Str("token", token).Msg("failed to marshal turn")
		return fmt.Errorf("marshal turn: %w", err)
	}
	key := conversationKey(token)

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, b)
		if r.maxTurns > 0 {
			pipe.LTrim(ctx, key, int64(-r.maxTurns), -1)
		}
		// extend TTL on touch
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
			pipe.Expire(ctx, sessionMetaKey(token), r.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to append turn to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisConversationRepository) History(ctx context.Context, token string) ([]model.ConversationTurn, error) {
	key := conversationKey(token)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.ConversationTurn{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation history from redis")
		return nil, errx.WrapRedis(err)
	}

	turns := make([]model.ConversationTurn, 0, len(rows))
	for i, s := range rows {
		var t model.ConversationTurn
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			logx.Error().Err(err).Str("token", token).Int("index", i).Msg("failed to unmarshal turn")
			return nil, fmt.Errorf("unmarshal turn at index %d: %w", i, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *RedisConversationRepository) Clear(ctx context.Context, token string) error {
	key := conversationKey(token)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete conversation history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisConversationRepository) Meta(ctx context.Context, token string) (model.SessionMeta, bool, error) {
	var meta model.SessionMeta
	raw, err := r.rdb.Get(ctx, sessionMetaKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return meta, false, nil
		}
		return meta, false, errx.WrapRedis(err)
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		logx.Warn().Err(err).Str("token", token).Msg("discarding corrupt session metadata")
		return model.SessionMeta{}, false, nil
	}
	return meta, true, nil
}

func (r *RedisConversationRepository) SaveMeta(ctx context.Context, token string, meta model.SessionMeta) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal session meta: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionMetaKey(token), b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("token", token).Msg("failed to save session metadata")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ConversationRepository = (*RedisConversationRepository)(nil)
