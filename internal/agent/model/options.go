package model

import "context"

const (
	OptionKnowledge = "sa_helper_chatbot_knowledge"
	OptionSettings  = "sa_helper_chatbot_options"
	OptionRefusals  = "sa_helper_chatbot_refusal_patterns"
)

// OptionRepository is the persistent key-value configuration boundary.
type OptionRepository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
