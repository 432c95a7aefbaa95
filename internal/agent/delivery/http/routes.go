package http

import (
	"github.com/gin-gonic/gin"

	"github.com/OFTGNOV/Sa-helper-bot/internal/middleware"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")

	chat := api.Group("/chat")
	{
		chat.POST("/message", mw.RateLimit(), h.SendMessage)
		chat.POST("/feedback", h.SubmitFeedback)
		chat.GET("/suggestions", h.GetSuggestions)
		chat.GET("/history", h.GetHistory)
		chat.DELETE("/history", h.ClearHistory)
	}

	admin := api.Group("/admin")
	admin.Use(mw.AdminAuth())
	{
		admin.GET("/knowledge", h.GetKnowledge)
		admin.PUT("/knowledge", h.SaveKnowledge)
		admin.PUT("/knowledge/:section", h.SaveKnowledgeSection)
		admin.GET("/settings", h.GetSettings)
		admin.PUT("/settings", h.SaveSettings)
		admin.POST("/test-api", h.TestAPI)
		admin.GET("/refusal-patterns", h.GetRefusalPatterns)
		admin.PUT("/refusal-patterns", h.SaveRefusalPatterns)
		admin.GET("/feedback", h.GetFeedbackSummary)
		admin.DELETE("/cache", h.InvalidateCache)
	}
}
