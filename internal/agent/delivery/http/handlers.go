package http

import (
	"github.com/gin-gonic/gin"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/OFTGNOV/Sa-helper-bot/pkg/response"
)

// SendMessage answers one widget message.
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, token, err := h.processMessageRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.engine.Respond(ctx, req.toInput(token))
	if err != nil {
		logx.Error().Err(err).Msg("delivery.http.SendMessage: Respond failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, newMessageResp(o))
}

func (h *handler) SubmitFeedback(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processFeedbackRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.feedback.Submit(ctx, req.toInput()); err != nil {
		logx.Warn().Err(err).Msg("delivery.http.SubmitFeedback: Submit failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, gin.H{"recorded": true})
}

func (h *handler) GetSuggestions(c *gin.Context) {
	ctx := c.Request.Context()

	n, token, err := h.processSuggestionsRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, suggestionsResp{Suggestions: h.engine.Suggestions(ctx, token, n)})
}

func (h *handler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	turns, stats, err := h.engine.History(ctx, sessionToken(c))
	if err != nil {
		logx.Error().Err(err).Msg("delivery.http.GetHistory: History failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, newHistoryResp(turns, stats))
}

func (h *handler) ClearHistory(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.engine.Clear(ctx, sessionToken(c))
	if err != nil {
		logx.Error().Err(err).Msg("delivery.http.ClearHistory: Clear failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, clearResp{SessionStats: stats})
}

func (h *handler) GetKnowledge(c *gin.Context) {
	response.OK(c, newKnowledgeResp(h.engine.Deps().Knowledge.Load(c.Request.Context())))
}

// SaveKnowledge replaces the whole knowledge base.
func (h *handler) SaveKnowledge(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processKnowledgeRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	store := h.engine.Deps().Knowledge
	if err := store.Save(ctx, model.KnowledgeBase(req)); err != nil {
		logx.Error().Err(err).Msg("delivery.http.SaveKnowledge: Save failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, newKnowledgeResp(store.Load(ctx)))
}

func (h *handler) SaveKnowledgeSection(c *gin.Context) {
	ctx := c.Request.Context()

	name, req, err := h.processSectionRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	store := h.engine.Deps().Knowledge
	if err := store.SetSection(ctx, name, req.Content); err != nil {
		logx.Error().Err(err).Str("section", name).Msg("delivery.http.SaveKnowledgeSection: SetSection failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, newKnowledgeResp(store.Load(ctx)))
}

func (h *handler) GetSettings(c *gin.Context) {
	response.OK(c, newSettingsResp(h.engine.Deps().Settings.Load(c.Request.Context())))
}

func (h *handler) SaveSettings(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSettingsRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	store := h.engine.Deps().Settings
	if err := store.Save(ctx, req.toSettings(store.Load(ctx))); err != nil {
		logx.Warn().Err(err).Msg("delivery.http.SaveSettings: Save failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, newSettingsResp(store.Load(ctx)))
}

// TestAPI runs one generation call against the saved settings.
func (h *handler) TestAPI(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTestAPIRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	text, err := h.engine.TestConnection(ctx, req.Message)
	if err != nil {
		logx.Warn().Err(err).Msg("delivery.http.TestAPI: TestConnection failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, testAPIResp{Response: text})
}

func (h *handler) GetRefusalPatterns(c *gin.Context) {
	response.OK(c, newRefusalPatternsResp(h.engine.Deps().Settings.RefusalPatterns(c.Request.Context())))
}

// SaveRefusalPatterns replaces the phrases that mark a generated reply as a refusal.
func (h *handler) SaveRefusalPatterns(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRefusalPatternsRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	store := h.engine.Deps().Settings
	if err := store.SaveRefusalPatterns(ctx, req.clean()); err != nil {
		logx.Error().Err(err).Msg("delivery.http.SaveRefusalPatterns: SaveRefusalPatterns failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, newRefusalPatternsResp(store.RefusalPatterns(ctx)))
}

func (h *handler) GetFeedbackSummary(c *gin.Context) {
	ctx := c.Request.Context()

	sum, err := h.feedback.Summary(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("delivery.http.GetFeedbackSummary: Summary failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, newFeedbackSummaryResp(sum))
}

func (h *handler) InvalidateCache(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.engine.Deps().Cache.InvalidateAll(ctx); err != nil {
		logx.Error().Err(err).Msg("delivery.http.InvalidateCache: InvalidateAll failed")
		response.Error(c, mapError(err))
		return
	}

	response.OK(c, gin.H{"invalidated": true})
}
