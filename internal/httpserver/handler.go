package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OFTGNOV/Sa-helper-bot/internal/middleware"
)

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(middleware.Recovery(), middleware.Logging())

	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv.chat.RegisterRoutes(srv.gin.Group(""), srv.mw)
}
