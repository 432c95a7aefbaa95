package repo

import (
	"context"
	"errors"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
	"github.com/redis/go-redis/v9"
)

type RedisOptionRepository struct {
	rdb redis.Cmdable
}

func NewRedisOptionRepository(rdb redis.Cmdable) *RedisOptionRepository {
	return &RedisOptionRepository{rdb: rdb}
}

func optionKey(key string) string {
	return "option:" + key
}

func (r *RedisOptionRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, optionKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, errx.WrapRedis(err)
	}
	return v, true, nil
}

func (r *RedisOptionRepository) Set(ctx context.Context, key, value string) error {
	return errx.WrapRedis(r.rdb.Set(ctx, optionKey(key), value, 0).Err())
}

func (r *RedisOptionRepository) Delete(ctx context.Context, key string) error {
	return errx.WrapRedis(r.rdb.Del(ctx, optionKey(key)).Err())
}

var _ model.OptionRepository = (*RedisOptionRepository)(nil)
