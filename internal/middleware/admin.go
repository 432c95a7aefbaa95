package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OFTGNOV/Sa-helper-bot/pkg/response"
)

// AdminAuth accepts "Bearer <token>" or the raw token in the Authorization header.
func (m Middleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

		if m.adminToken == "" || token == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(m.adminToken)) != 1 {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
