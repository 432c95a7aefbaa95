// Package http is the gin transport for the chat widget and its admin screens.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/feedback"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/graph"
	"github.com/OFTGNOV/Sa-helper-bot/internal/middleware"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	engine   *graph.Engine
	feedback *feedback.Service
}

func New(engine *graph.Engine, fb *feedback.Service) Handler {
	return &handler{engine: engine, feedback: fb}
}
