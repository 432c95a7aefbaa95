package http

import (
	"strings"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/textutil"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/validator"
)

type messageReq struct {
	Message     string `json:"message"`
	PageContent string `json:"page_content"`
	PageURL     string `json:"page_url"`
	PageTitle   string `json:"page_title"`
}

func (r messageReq) toInput(token string) model.ChatRequest {
	return model.ChatRequest{
		SessionToken: token,
		Message:      r.Message,
		PageContent:  r.PageContent,
		PageURL:      r.PageURL,
		PageTitle:    r.PageTitle,
	}
}

type feedbackReq struct {
	Feedback string `json:"feedback" binding:"required"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

func (r feedbackReq) toInput() model.Feedback {
	return model.Feedback{
		Kind:     model.FeedbackKind(r.Feedback),
		Message:  r.Message,
		Response: r.Response,
	}
}

type sectionReq struct {
	Content string `json:"content"`
}

type settingsReq struct {
	Enabled            bool    `json:"enabled"`
	APIKey             string  `json:"api_key"`
	Model              string  `json:"model"`
	IncludePageContent bool    `json:"include_page_content"`
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"max_tokens"`
}

// toSettings keeps the stored key when the client echoes back the masked value or omits it.
func (r settingsReq) toSettings(current model.APISettings) model.APISettings {
	key := r.APIKey
	if key == "" || key == current.MaskedKey() {
		key = current.APIKey
	}
	return model.APISettings{
		Enabled:            r.Enabled,
		APIKey:             key,
		Model:              r.Model,
		IncludePageContent: r.IncludePageContent,
		Temperature:        r.Temperature,
		MaxTokens:          r.MaxTokens,
	}
}

// refusalPatternsReq replaces the refusal phrase list; an empty list restores the built-in one.
type refusalPatternsReq struct {
	Patterns []string `json:"patterns" binding:"required"`
}

func (r refusalPatternsReq) clean() []string {
	out := make([]string, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type testAPIReq struct {
	Message string `json:"message"`
}

type messageResp struct {
	Response     string             `json:"response"`
	Suggestions  []string           `json:"suggestions"`
	SessionStats model.SessionStats `json:"session_stats"`
	Timestamp    time.Time          `json:"timestamp"`
}

func newMessageResp(o *model.ChatReply) messageResp {
	sugg := o.Suggestions
	if sugg == nil {
		sugg = []string{}
	}
	return messageResp{
		Response:     o.Response,
		Suggestions:  sugg,
		SessionStats: o.SessionStats,
		Timestamp:    o.Timestamp,
	}
}

type suggestionsResp struct {
	Suggestions []string `json:"suggestions"`
}

// turnResp is a stored turn prepared for display in the widget.
type turnResp struct {
	Role      model.Role `json:"role"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp"`
	PageURL   string     `json:"page_url,omitempty"`
	PageTitle string     `json:"page_title,omitempty"`
}

type historyResp struct {
	History      []turnResp         `json:"history"`
	SessionStats model.SessionStats `json:"session_stats"`
}

func newHistoryResp(turns []model.ConversationTurn, stats model.SessionStats) historyResp {
	out := make([]turnResp, 0, len(turns))
	for _, t := range turns {
		out = append(out, turnResp{
			Role:      t.Role,
			Text:      textutil.CollapseWhitespace(t.Text),
			Timestamp: t.Timestamp,
			PageURL:   t.PageURL,
			PageTitle: t.PageTitle,
		})
	}
	return historyResp{History: out, SessionStats: stats}
}

type clearResp struct {
	SessionStats model.SessionStats `json:"session_stats"`
}

type settingsResp struct {
	Enabled            bool    `json:"enabled"`
	APIKey             string  `json:"api_key"`
	Configured         bool    `json:"configured"`
	Model              string  `json:"model"`
	IncludePageContent bool    `json:"include_page_content"`
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"max_tokens"`
}

func newSettingsResp(s model.APISettings) settingsResp {
	return settingsResp{
		Enabled:            s.Enabled,
		APIKey:             s.MaskedKey(),
		Configured:         s.IsConfigured(),
		Model:              s.Model,
		IncludePageContent: s.IncludePageContent,
		Temperature:        s.Temperature,
		MaxTokens:          s.MaxTokens,
	}
}

type sectionResp struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type knowledgeResp struct {
	Sections []sectionResp `json:"sections"`
}

func newKnowledgeResp(kb model.KnowledgeBase) knowledgeResp {
	out := knowledgeResp{Sections: make([]sectionResp, 0, len(kb))}
	for _, name := range kb.Names() {
		out.Sections = append(out.Sections, sectionResp{
			Name:    name,
			Title:   textutil.SectionTitle(name),
			Content: kb.Section(name),
		})
	}
	return out
}

type testAPIResp struct {
	Response string `json:"response"`
}

type feedbackSummaryResp struct {
	model.FeedbackSummary
}

func newFeedbackSummaryResp(s model.FeedbackSummary) feedbackSummaryResp {
	if s.Recent == nil {
		s.Recent = []model.Feedback{}
	}
	return feedbackSummaryResp{FeedbackSummary: s}
}

type refusalPatternsResp struct {
	Patterns []string `json:"patterns"`
	Custom   bool     `json:"custom"`
}

func newRefusalPatternsResp(saved []string) refusalPatternsResp {
	if len(saved) == 0 {
		return refusalPatternsResp{Patterns: validator.DefaultRefusalPatterns}
	}
	return refusalPatternsResp{Patterns: saved, Custom: true}
}
