package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const DefaultWordLimit = 150

//go:embed template/system_prompt.txt
var systemPrompt string

//go:embed template/suggestion_prompt.txt
var suggestionPrompt string

// RenderSystem renders the answer instruction around grounding text and triggers prompt callbacks.
func RenderSystem(ctx context.Context, grounding string, hasPage bool) (string, error) {
	return render(ctx, systemPrompt, map[string]any{
		"Context":   grounding,
		"HasPage":   hasPage,
		"WordLimit": DefaultWordLimit,
	})
}

// RenderSuggestion renders the follow-up question instruction.
func RenderSuggestion(ctx context.Context, conversation string, count int) (string, error) {
	return render(ctx, suggestionPrompt, map[string]any{
		"Conversation": conversation,
		"Count":        count,
	})
}

func render(ctx context.Context, tplText string, vars map[string]any) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(tplText),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt render: empty result")
	}
	return msgs[0].Content, nil
}
