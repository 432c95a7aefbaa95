package generation

import (
	"context"
	"fmt"
	"sync"

	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

type chatModelKey struct {
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
}

// EinoProvider generates through the eino-ext Gemini ChatModel backed by the genai SDK.
// Chat models are built lazily per settings combination since the API key is
// editable at runtime.
type EinoProvider struct {
	baseURL string

	mu     sync.Mutex
	models map[chatModelKey]*gemini.ChatModel
}

func NewEinoProvider(baseURL string) *EinoProvider {
	return &EinoProvider{baseURL: baseURL, models: make(map[chatModelKey]*gemini.ChatModel)}
}

func (p *EinoProvider) chatModel(ctx context.Context, pr Prompt) (*gemini.ChatModel, error) {
	key := chatModelKey{apiKey: pr.APIKey, model: pr.Model, temperature: float32(pr.Temperature), maxTokens: pr.MaxTokens}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cm, ok := p.models[key]; ok {
		return cm, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  pr.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = p.baseURL
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	temperature := key.temperature
	maxTokens := key.maxTokens
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       pr.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Str("model", pr.Model).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}
	p.models[key] = cm
	return cm, nil
}

func (p *EinoProvider) Generate(ctx context.Context, pr Prompt) (*Result, error) {
	cm, err := p.chatModel(ctx, pr)
	if err != nil {
		return nil, &Error{Kind: KindAPI, Err: err}
	}

	msgs := make([]*schema.Message, 0, 2)
	if pr.System != "" {
		msgs = append(msgs, schema.SystemMessage(pr.System))
	}
	msgs = append(msgs, schema.UserMessage(pr.User))

	out, err := cm.Generate(ctx, msgs)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Content == "" {
		return nil, &Error{Kind: KindEmptyResponse}
	}

	res := &Result{Text: out.Content}
	if out.ResponseMeta != nil {
		res.Usage = out.ResponseMeta.Usage
	}
	return res, nil
}

var _ Provider = (*EinoProvider)(nil)
