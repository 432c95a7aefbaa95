package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/OFTGNOV/Sa-helper-bot/pkg/response"
)

const RequestIDHeader = "X-Request-ID"

// Logging tags each request with an id and logs its outcome. Bodies are never
// logged since they carry visitor messages.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		ev := logx.Debug()
		switch {
		case status >= 500:
			ev = logx.Error()
		case status >= 400:
			ev = logx.Info()
		}
		ev.Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	}
}

// Recovery converts a handler panic into a 500 with the generic message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logx.Error().Interface("panic", r).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				response.Abort(c, fmt.Errorf("panic: %v", r))
			}
		}()
		c.Next()
	}
}
