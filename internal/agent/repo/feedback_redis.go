package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const feedbackKey = "feedback:entries"

type RedisFeedbackRepository struct {
	rdb redis.Cmdable
}

func NewRedisFeedbackRepository(rdb redis.Cmdable) *RedisFeedbackRepository {
	return &RedisFeedbackRepository{rdb: rdb}
}

func (r *RedisFeedbackRepository) Append(ctx context.Context, fb model.Feedback, limit int) error {
	b, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, feedbackKey, b)
		if limit > 0 {
			pipe.LTrim(ctx, feedbackKey, int64(-limit), -1)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Msg("failed to append feedback to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisFeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	rows, err := r.rdb.LRange(ctx, feedbackKey, 0, -1).Result()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	out := make([]model.Feedback, 0, len(rows))
	for i, s := range rows {
		var fb model.Feedback
		if err := json.Unmarshal([]byte(s), &fb); err != nil {
			logx.Warn().Err(err).Int("index", i).Msg("skipping corrupt feedback entry")
			continue
		}
		out = append(out, fb)
	}
	return out, nil
}

var _ model.FeedbackRepository = (*RedisFeedbackRepository)(nil)
