package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/metrics"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/OFTGNOV/Sa-helper-bot/pkg/response"
)

const rateLimitPrefix = "sahelper:ratelimit"

// NewLimiter builds a fixed-window limiter. With a nil client counters live in
// process memory; otherwise they are shared through Redis.
func NewLimiter(cfg model.RateLimitConfig, rdb *redis.Client) (*limiter.Limiter, error) {
	rate := limiter.Rate{Period: cfg.Period, Limit: cfg.Requests}
	if rate.Period <= 0 || rate.Limit <= 0 {
		return nil, fmt.Errorf("invalid rate limit %d/%s", cfg.Requests, cfg.Period)
	}

	if rdb == nil {
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), rate), nil
	}

	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: rateLimitPrefix})
	if err != nil {
		return nil, fmt.Errorf("rate limit store: %w", err)
	}
	return limiter.New(store, rate), nil
}

// RateLimit counts requests per client IP. A store failure lets the request through.
func (m Middleware) RateLimit() gin.HandlerFunc {
	if m.limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return mgin.NewMiddleware(m.limiter,
		mgin.WithKeyGetter(func(c *gin.Context) string { return c.ClientIP() }),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			metrics.RecordRateLimited()
			logx.Warn().Str("ip", c.ClientIP()).Str("path", c.FullPath()).Msg("rate limit reached")
			response.Abort(c, errx.New(model.ErrRateLimited, http.StatusTooManyRequests, errx.RateLimitedMessage))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logx.Error().Err(err).Msg("rate limit store unavailable")
			c.Next()
		}),
	)
}
