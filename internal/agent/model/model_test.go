package model

import (
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeBase_Normalize(t *testing.T) {
	t.Parallel()

	kb := KnowledgeBase{"pricing": "From $99", SectionCompanyInfo: "We build sites."}.Normalize()

	for _, s := range FixedSections {
		_, ok := kb[s]
		assert.True(t, ok, s)
	}
	assert.Equal(t, "We build sites.", kb.Section(SectionCompanyInfo))
	assert.Equal(t, "", kb.Section(SectionFAQ))
	assert.Equal(t, append(append([]string(nil), FixedSections...), "pricing"), kb.Names())

	var empty KnowledgeBase
	assert.Equal(t, "", empty.Section(SectionRecentNews))
}

func TestAPISettings(t *testing.T) {
	t.Parallel()

	s := APISettings{Enabled: true, APIKey: "  ", Temperature: 0.4, MaxTokens: 800}
	assert.False(t, s.IsConfigured())
	s.APIKey = "AIzaSyExample1234"
	assert.True(t, s.IsConfigured())
	s.Enabled = false
	assert.False(t, s.IsConfigured())

	require.NoError(t, s.Validate())
	s.Temperature = 2.5
	assert.True(t, errors.Is(s.Validate(), ErrInvalidSettings))
	s.Temperature = 1
	s.MaxTokens = 0
	assert.True(t, errors.Is(s.Validate(), ErrInvalidSettings))

	assert.Equal(t, "****1234", s.MaskedKey())
	assert.Equal(t, "***", APISettings{APIKey: "abc"}.MaskedKey())
	assert.Equal(t, "", APISettings{}.MaskedKey())
}

func TestComputeCost(t *testing.T) {
	t.Parallel()

	in, out, total := ComputeCost(&schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 200_000}, ResolvePricing("gemini-1.5-pro"))
	assert.InDelta(t, 1.25, in, 1e-9)
	assert.InDelta(t, 1.0, out, 1e-9)
	assert.InDelta(t, 2.25, total, 1e-9)

	_, _, total = ComputeCost(nil, ResolvePricing("gemini-1.5-pro"))
	assert.Zero(t, total)
	assert.Equal(t, Pricing{}, ResolvePricing("unknown"))
}
