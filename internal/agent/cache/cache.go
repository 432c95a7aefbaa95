// Package cache stores validated generated answers. An in-process L1 always
// runs; Redis is used as a shared L2 when configured.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/textutil"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = time.Hour
	keyPrefix  = "sahelper:response:"
)

type ResponseCache struct {
	l1  *cache.Cache
	rdb redis.Cmdable
	ttl time.Duration
}

// New returns a cache with the given default TTL. rdb may be nil.
func New(ttl time.Duration, rdb redis.Cmdable) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{l1: cache.New(ttl, 2*ttl), rdb: rdb, ttl: ttl}
}

// Key hashes every input that changes the generated answer. Page content only
// counts when the settings feed it to the model.
func Key(message string, settings model.APISettings, pageContent string) string {
	if !settings.IncludePageContent {
		pageContent = ""
	}
	page := md5.Sum([]byte(pageContent))

	var b strings.Builder
	b.WriteString(textutil.NormalizeMessage(message))
	b.WriteByte('\x1f')
	b.WriteString(settings.Model)
	b.WriteByte('\x1f')
	b.WriteString(strconv.FormatFloat(settings.Temperature, 'f', -1, 64))
	b.WriteByte('\x1f')
	b.WriteString(strconv.FormatBool(settings.IncludePageContent))
	b.WriteByte('\x1f')
	b.WriteString(hex.EncodeToString(page[:]))

	sum := md5.Sum([]byte(b.String()))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get looks up an answer. Backend errors count as a miss.
func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool) {
	if v, ok := c.l1.Get(key); ok {
		return v.(string), true
	}
	if c.rdb == nil {
		return "", false
	}
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Warn().Err(err).Str("key", key).Msg("response cache read failed; treating as miss")
		}
		return "", false
	}
	c.l1.Set(key, v, cache.DefaultExpiration)
	return v, true
}

// Put stores text under key. ttl <= 0 uses the default.
func (c *ResponseCache) Put(ctx context.Context, key, text string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.l1.Set(key, text, ttl)
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, text, ttl).Err(); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("response cache write failed")
	}
}

// InvalidateAll drops every cached answer.
func (c *ResponseCache) InvalidateAll(ctx context.Context) error {
	c.l1.Flush()
	if c.rdb == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			logx.Error().Err(err).Msg("response cache scan failed")
			return err
		}
		if len(keys) > 0 {
			pipe := c.rdb.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
				logx.Error().Err(err).Msg("response cache delete failed")
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	logx.Info().Msg("response cache invalidated")
	return nil
}

// Len reports the number of L1 entries.
func (c *ResponseCache) Len() int {
	return c.l1.ItemCount()
}
