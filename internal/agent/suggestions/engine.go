// Package suggestions derives follow-up question chips from the conversation.
package suggestions

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/generation"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/prompts"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

const (
	Count            = 3
	DefaultTimeout   = 10 * time.Second
	bootstrapTurns   = 2
	shortHistory     = 6
	aiContextTurns   = 4
	maxAISuggestions = 2
	minAILength      = 10
	maxAILength      = 100
)

type Source string

const (
	SourceStatic Source = "static"
	SourceAI     Source = "ai"
)

// Generator is the subset of the generation client the engine uses.
type Generator interface {
	IsConfigured(settings model.APISettings) bool
	Generate(ctx context.Context, req generation.Request) (string, error)
}

type Result struct {
	Category    model.SuggestionCategory
	Suggestions []string
	Source      Source
}

type Engine struct {
	gen     Generator
	timeout time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// New builds an engine. gen may be nil, which disables AI augmentation.
func New(gen Generator, rnd *rand.Rand, timeout time.Duration) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{gen: gen, rnd: rnd, timeout: timeout}
}

// Classify scores every category against the combined text and returns the best.
func (e *Engine) Classify(userMessage, botResponse string, historyLen int) model.SuggestionCategory {
	text := strings.ToLower(userMessage + " " + botResponse)

	best := model.SuggestionCategory("")
	bestScore := 0.0
	for _, cat := range classifyOrder {
		score := 0.0
		for _, kw := range compiledKeywords[cat] {
			if !strings.Contains(text, kw.text) {
				continue
			}
			score++
			if kw.bounded.MatchString(text) {
				score += 0.5
			}
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	if bestScore > 0 {
		return best
	}
	if historyLen < shortHistory {
		return model.CategoryCompanyInfo
	}
	return model.CategoryServices
}

// Sample returns n distinct phrases from the category, in random order.
func (e *Engine) Sample(cat model.SuggestionCategory, n int) []string {
	phrases := Phrases[cat]
	if len(phrases) == 0 {
		phrases = Phrases[model.CategoryInitial]
	}
	e.mu.Lock()
	perm := e.rnd.Perm(len(phrases))
	e.mu.Unlock()

	if n > len(phrases) {
		n = len(phrases)
	}
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, phrases[i])
	}
	return out
}

// Initial returns the bootstrap suggestions.
func (e *Engine) Initial() Result {
	return Result{Category: model.CategoryInitial, Suggestions: e.Sample(model.CategoryInitial, Count), Source: SourceStatic}
}

// Predict returns suggestions for the current history. It never fails.
func (e *Engine) Predict(ctx context.Context, history []model.ConversationTurn, settings model.APISettings) Result {
	if len(history) <= bootstrapTurns {
		return e.Initial()
	}

	lastUser, lastBot := lastTexts(history)
	cat := e.Classify(lastUser, lastBot, len(history))
	static := e.Sample(cat, Count)

	if e.gen == nil || !e.gen.IsConfigured(settings) {
		return Result{Category: cat, Suggestions: static, Source: SourceStatic}
	}

	ai, err := e.generate(ctx, history, settings)
	if err != nil {
		logx.Warn().Err(err).Str("category", string(cat)).Msg("ai suggestions unavailable; using static list")
		return Result{Category: cat, Suggestions: static, Source: SourceStatic}
	}

	out := append([]string(nil), ai...)
	for _, s := range static {
		if len(out) == Count {
			break
		}
		if !containsFold(out, s) {
			out = append(out, s)
		}
	}
	return Result{Category: cat, Suggestions: out, Source: SourceAI}
}

func (e *Engine) generate(ctx context.Context, history []model.ConversationTurn, settings model.APISettings) ([]string, error) {
	system, err := prompts.RenderSuggestion(ctx, prompts.RecentConversation(history, aiContextTurns), Count)
	if err != nil {
		return nil, err
	}
	raw, err := e.gen.Generate(ctx, generation.Request{
		Settings: settings,
		System:   system,
		User:     "Suggest the follow-up questions now.",
		Timeout:  e.timeout,
	})
	if err != nil {
		return nil, err
	}
	lines := ParseLines(raw)
	if len(lines) < maxAISuggestions {
		return nil, fmt.Errorf("too few usable ai suggestions: %d", len(lines))
	}
	return lines[:maxAISuggestions], nil
}

// ParseLines extracts candidate questions from model output, dropping list
// markers and anything outside the length gate.
func ParseLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•0123456789.) ")
		line = strings.Trim(line, "\"'` ")
		n := utf8.RuneCountInString(line)
		if n < minAILength || n > maxAILength {
			continue
		}
		if !containsFold(out, line) {
			out = append(out, line)
		}
	}
	return out
}

func lastTexts(history []model.ConversationTurn) (user, bot string) {
	for i := len(history) - 1; i >= 0 && (user == "" || bot == ""); i-- {
		switch history[i].Role {
		case model.RoleUser:
			if user == "" {
				user = history[i].Text
			}
		case model.RoleBot:
			if bot == "" {
				bot = history[i].Text
			}
		}
	}
	return user, bot
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
