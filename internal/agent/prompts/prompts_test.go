package prompts

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turn(role model.Role, text string, hh, mm int) model.ConversationTurn {
	return model.ConversationTurn{Role: role, Text: text, Timestamp: time.Date(2025, 3, 1, hh, mm, 0, 0, time.UTC)}
}

func TestBuildContext_NoContext(t *testing.T) {
	t.Parallel()

	got := BuildContext(ContextInput{Knowledge: model.DefaultKnowledgeBase(), PageContent: "ignored", IncludePageContent: false})
	assert.Equal(t, NoContextMarker, got)
	assert.Equal(t, NoContextMarker, BuildContext(ContextInput{}))
}

func TestBuildContext_OrderAndFormatting(t *testing.T) {
	t.Parallel()

	kb := model.DefaultKnowledgeBase()
	kb[model.SectionCompanyInfo] = "<p>Acme   builds <b>websites</b>.</p>"
	kb["pricing"] = "Plans from $99."

	got := BuildContext(ContextInput{
		History: []model.ConversationTurn{
			turn(model.RoleUser, "Hi <i>there</i>", 9, 5),
			turn(model.RoleBot, "Hello!\n\nHow can I help?", 9, 6),
		},
		PageContent:        "<h1>Services</h1><p>Web design</p>",
		IncludePageContent: true,
		Knowledge:          kb,
	})

	hist := strings.Index(got, "RECENT CONVERSATION:")
	page := strings.Index(got, "CURRENT PAGE CONTENT:")
	know := strings.Index(got, "KNOWLEDGE BASE:")
	require.True(t, hist >= 0 && page > hist && know > page, got)

	assert.Contains(t, got, "User (09:05): Hi there")
	assert.Contains(t, got, "Assistant (09:06): Hello! How can I help?")
	assert.Contains(t, got, "CURRENT PAGE CONTENT:\nServices Web design")
	assert.Contains(t, got, "Company Info:\nAcme builds websites.")
	assert.Contains(t, got, "Pricing:\nPlans from $99.")
	assert.NotContains(t, got, "Faq:")
	assert.Less(t, strings.Index(got, "Company Info:"), strings.Index(got, "Pricing:"))
}

func TestBuildContext_HistoryWindowAndPageCap(t *testing.T) {
	t.Parallel()

	var history []model.ConversationTurn
	for i := 0; i < 20; i++ {
		history = append(history, turn(model.RoleUser, fmt.Sprintf("message-%02d", i), 10, i))
	}
	got := BuildContext(ContextInput{
		History:            history,
		PageContent:        strings.Repeat("x", 5000),
		IncludePageContent: true,
	})

	assert.NotContains(t, got, "message-07")
	assert.Contains(t, got, "message-08")
	assert.Contains(t, got, "message-19")

	idx := strings.Index(got, "CURRENT PAGE CONTENT:\n")
	require.GreaterOrEqual(t, idx, 0)
	page := got[idx+len("CURRENT PAGE CONTENT:\n"):]
	assert.Len(t, page, MaxPageContentChars)
	assert.True(t, strings.HasSuffix(page, "..."))
}

func TestBuildContext_DoesNotMutateHistory(t *testing.T) {
	t.Parallel()

	history := []model.ConversationTurn{turn(model.RoleUser, "<b>bold</b>", 8, 0)}
	_ = BuildContext(ContextInput{History: history})
	assert.Equal(t, "<b>bold</b>", history[0].Text)
}

func TestRenderSystem(t *testing.T) {
	t.Parallel()

	out, err := RenderSystem(context.Background(), "KNOWLEDGE BASE:\nCompany Info:\nAcme", true)
	require.NoError(t, err)
	assert.Contains(t, out, "under 150 words")
	assert.Contains(t, out, "prefer the current page content")
	assert.Contains(t, out, "Company Info:\nAcme")

	out, err = RenderSystem(context.Background(), NoContextMarker, false)
	require.NoError(t, err)
	assert.NotContains(t, out, "prefer the current page content")
	assert.Contains(t, out, NoContextMarker)
}

func TestRenderSuggestion(t *testing.T) {
	t.Parallel()

	conv := RecentConversation([]model.ConversationTurn{
		turn(model.RoleUser, "one", 1, 0),
		turn(model.RoleBot, "two", 1, 1),
		turn(model.RoleUser, "three", 1, 2),
		turn(model.RoleBot, "four", 1, 3),
		turn(model.RoleUser, "five", 1, 4),
	}, 4)
	assert.Equal(t, "Assistant: two\nUser: three\nAssistant: four\nUser: five", conv)

	out, err := RenderSuggestion(context.Background(), conv, 3)
	require.NoError(t, err)
	assert.Contains(t, out, "write 3 short")
	assert.Contains(t, out, "User: five")
}
