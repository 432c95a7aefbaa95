package fallback

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *Engine {
	return New(rand.New(rand.NewSource(42)))
}

func TestRespond_CompanyFromKnowledge(t *testing.T) {
	t.Parallel()

	kb := model.DefaultKnowledgeBase()
	kb[model.SectionCompanyInfo] = "<p>Acme Studio is a web agency founded in 2010.</p>"

	got := seeded().Respond("Tell me about your company", "", kb)
	assert.Equal(t, "company", got.Topic)
	assert.Equal(t, "**Company Info**\n\nAcme Studio is a web agency founded in 2010.", got.Text)
}

func TestRespond_SectionNotConfigured(t *testing.T) {
	t.Parallel()

	got := seeded().Respond("Tell me about your company", "", model.DefaultKnowledgeBase())
	assert.Equal(t, "company", got.Topic)
	assert.Contains(t, got.Text, "hasn't been set up yet")
}

func TestRespond_GibberishDeflects(t *testing.T) {
	t.Parallel()

	got := seeded().Respond("xyz completely unrelated gibberish", "", model.DefaultKnowledgeBase())
	assert.Equal(t, "deflection", got.Topic)
	assert.Contains(t, Deflections, got.Text)
}

func TestRespond_DeflectionIsReproducibleWithSeed(t *testing.T) {
	t.Parallel()

	a, b := seeded(), seeded()
	for i := 0; i < 10; i++ {
		assert.Equal(t,
			a.Respond("qqq zzz", "", nil).Text,
			b.Respond("qqq zzz", "", nil).Text)
	}
}

func TestRespond_PageContentDeflection(t *testing.T) {
	t.Parallel()

	got := seeded().Respond("xyz qqq", "Some page body", nil)
	assert.Equal(t, "page", got.Topic)
	assert.Equal(t, pageDeflection, got.Text)
}

func TestRespond_Priority(t *testing.T) {
	t.Parallel()

	kb := model.DefaultKnowledgeBase()
	kb[model.SectionWebsiteNavigation] = "Use the top menu."
	kb[model.SectionRecentNews] = "We launched v2."
	kb["pricing"] = "Plans start at $99 per month."

	tests := []struct {
		msg   string
		topic string
	}{
		{"where can I find the blog?", "navigation"},
		{"any news?", "news"},
		{"tell me your pricing", "pricing"},
		{"can I email you", "contact"},
		{"hello!", "greeting"},
		{"thanks a lot", "thanks"},
		{"bye now", "farewell"},
		{"thanks, I'll call you later", "thanks"},
		{"hey, can I email you?", "greeting"},
		{"bye, I will phone tomorrow", "farewell"},
		{"what is this", "company"},
	}
	e := seeded()
	for _, tt := range tests {
		got := e.Respond(tt.msg, "", kb)
		assert.Equal(t, tt.topic, got.Topic, tt.msg)
	}
}

func TestRespond_ContactUsesSectionWhenPresent(t *testing.T) {
	t.Parallel()

	kb := model.DefaultKnowledgeBase()
	kb[model.SectionContactInfo] = "Email hello@acme.test"
	got := seeded().Respond("can I email you", "", kb)
	assert.Equal(t, "**Contact Info**\n\nEmail hello@acme.test", got.Text)
}

func TestRespond_LongSectionCapped(t *testing.T) {
	t.Parallel()

	kb := model.DefaultKnowledgeBase()
	kb[model.SectionRecentNews] = strings.Repeat("We shipped a new feature this week. ", 30)
	got := seeded().Respond("latest news", "", kb)
	require.Equal(t, "news", got.Topic)
	assert.LessOrEqual(t, utf8.RuneCountInString(got.Text), MaxAnswerLength)
	assert.True(t, strings.HasSuffix(got.Text, "."))
}
