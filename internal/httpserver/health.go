package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/OFTGNOV/Sa-helper-bot/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "sa-helper-bot"
)

func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports 503 while a backing store is unreachable. The chat path
// still degrades gracefully in that state; this is for orchestrators.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if srv.ready != nil {
		if err := srv.ready(); err != nil {
			logx.Warn().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, response.Resp{Success: false, Message: "not ready"})
			return
		}
	}
	response.OK(c, gin.H{"status": "ready", "service": ServiceName})
}
