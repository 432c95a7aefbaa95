package middleware

import (
	"github.com/ulule/limiter/v3"
)

type Middleware struct {
	adminToken string
	limiter    *limiter.Limiter
}

// New builds the middleware set. A nil limiter disables rate limiting and an
// empty adminToken rejects every admin request.
func New(adminToken string, lim *limiter.Limiter) Middleware {
	return Middleware{adminToken: adminToken, limiter: lim}
}
