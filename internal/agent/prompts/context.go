// Package prompts assembles grounding context and renders the model instructions.
package prompts

import (
	"fmt"
	"strings"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/textutil"
)

const (
	// NoContextMarker replaces the context block when nothing is available.
	NoContextMarker = "No additional context is available. Answer only with general, non-specific guidance and suggest contacting the company directly."

	DefaultHistoryTurns = 12
	MaxPageContentChars = 2000
)

// ContextInput is everything the builder reads. It never mutates History.
type ContextInput struct {
	History            []model.ConversationTurn
	HistoryTurns       int
	PageContent        string
	IncludePageContent bool
	Knowledge          model.KnowledgeBase
}

// BuildContext renders history, page content, and knowledge sections in that order.
func BuildContext(in ContextInput) string {
	var blocks []string

	if h := historyBlock(in.History, in.HistoryTurns); h != "" {
		blocks = append(blocks, "RECENT CONVERSATION:\n"+h)
	}
	if in.IncludePageContent {
		if page := textutil.Truncate(textutil.Clean(in.PageContent), MaxPageContentChars); page != "" {
			blocks = append(blocks, "CURRENT PAGE CONTENT:\n"+page)
		}
	}
	if kb := knowledgeBlock(in.Knowledge); kb != "" {
		blocks = append(blocks, "KNOWLEDGE BASE:\n"+kb)
	}

	if len(blocks) == 0 {
		return NoContextMarker
	}
	return strings.Join(blocks, "\n\n")
}

func historyBlock(history []model.ConversationTurn, limit int) string {
	if limit <= 0 {
		limit = DefaultHistoryTurns
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	lines := make([]string, 0, len(history))
	for _, t := range history {
		text := textutil.Clean(t.Text)
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %s", roleLabel(t.Role), t.Timestamp.Format("15:04"), text))
	}
	return strings.Join(lines, "\n")
}

func knowledgeBlock(kb model.KnowledgeBase) string {
	var parts []string
	for _, name := range kb.Names() {
		content := textutil.Clean(kb.Section(name))
		if content == "" {
			continue
		}
		parts = append(parts, textutil.SectionTitle(name)+":\n"+content)
	}
	return strings.Join(parts, "\n\n")
}

func roleLabel(r model.Role) string {
	if r == model.RoleBot {
		return "Assistant"
	}
	return "User"
}

// RecentConversation renders the last n turns for the suggestion prompt.
func RecentConversation(history []model.ConversationTurn, n int) string {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	lines := make([]string, 0, len(history))
	for _, t := range history {
		if text := textutil.Clean(t.Text); text != "" {
			lines = append(lines, roleLabel(t.Role)+": "+text)
		}
	}
	return strings.Join(lines, "\n")
}

// UserPrompt wraps the visitor's message.
func UserPrompt(message string) string {
	return "User question: " + strings.TrimSpace(message)
}
