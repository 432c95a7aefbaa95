package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
)

const (
	SessionHeader = "X-Session-Token"
	SessionCookie = "sa_helper_session"

	sessionCookieMaxAge = 24 * 60 * 60
	maxTokenLength      = 128
)

// sessionToken reads the visitor's token from the header or cookie, issuing a
// fresh one when neither carries a usable value. The token is echoed back on
// both so the widget can pick either.
func sessionToken(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader(SessionHeader))
	if token == "" {
		token, _ = c.Cookie(SessionCookie)
		token = strings.TrimSpace(token)
	}
	if token == "" || len(token) > maxTokenLength {
		token = uuid.NewString()
	}
	c.Header(SessionHeader, token)
	c.SetCookie(SessionCookie, token, sessionCookieMaxAge, "/", "", false, true)
	return token
}

func (h *handler) processMessageRequest(c *gin.Context) (messageReq, string, error) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, "", errx.BadRequest(err, "")
	}
	return req, sessionToken(c), nil
}

func (h *handler) processFeedbackRequest(c *gin.Context) (feedbackReq, error) {
	var req feedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errx.BadRequest(err, invalidFeedbackMessage)
	}
	return req, nil
}

func (h *handler) processSuggestionsRequest(c *gin.Context) (int, string, error) {
	n, err := strconv.Atoi(c.DefaultQuery("conversation_length", "0"))
	if err != nil || n < 0 {
		return 0, "", errx.BadRequest(err, "conversation_length must be a non-negative integer")
	}
	return n, sessionToken(c), nil
}

func (h *handler) processKnowledgeRequest(c *gin.Context) (map[string]string, error) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, errx.BadRequest(err, "")
	}
	return req, nil
}

func (h *handler) processSectionRequest(c *gin.Context) (string, sectionReq, error) {
	var req sectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", req, errx.BadRequest(err, "")
	}
	return c.Param("section"), req, nil
}

func (h *handler) processSettingsRequest(c *gin.Context) (settingsReq, error) {
	var req settingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errx.BadRequest(err, invalidSettingsMessage)
	}
	return req, nil
}

func (h *handler) processRefusalPatternsRequest(c *gin.Context) (refusalPatternsReq, error) {
	var req refusalPatternsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errx.BadRequest(err, invalidPatternsMessage)
	}
	return req, nil
}

func (h *handler) processTestAPIRequest(c *gin.Context) (testAPIReq, error) {
	var req testAPIReq
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errx.BadRequest(err, "")
	}
	return req, nil
}
