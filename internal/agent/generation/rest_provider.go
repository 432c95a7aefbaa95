package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cloudwego/eino/schema"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1/models"

// restRequest mirrors the generateContent body.
type restRequest struct {
	Contents         []restContent  `json:"contents"`
	GenerationConfig *restGenConfig `json:"generationConfig,omitempty"`
}

type restContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []restPart `json:"parts"`
}

type restPart struct {
	Text string `json:"text,omitempty"`
}

type restGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type restResponse struct {
	Candidates []struct {
		Content      restContent `json:"content"`
		FinishReason string      `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// RESTProvider calls generateContent directly with the key as a query parameter.
type RESTProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTProvider(baseURL string, httpClient *http.Client) *RESTProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &RESTProvider{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Endpoint returns the generateContent URL for modelName.
func (p *RESTProvider) Endpoint(modelName, apiKey string) string {
	return fmt.Sprintf("%s/%s:generateContent?key=%s", p.baseURL, url.PathEscape(modelName), url.QueryEscape(apiKey))
}

func (p *RESTProvider) Generate(ctx context.Context, pr Prompt) (*Result, error) {
	text := pr.User
	if pr.System != "" {
		text = pr.System + "\n\n" + pr.User
	}
	body, err := json.Marshal(restRequest{
		Contents: []restContent{{Role: "user", Parts: []restPart{{Text: text}}}},
		GenerationConfig: &restGenConfig{
			Temperature:     pr.Temperature,
			MaxOutputTokens: pr.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint(pr.Model, pr.APIKey), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, &Error{Kind: KindTimeout, Err: redactKey(err)}
		}
		return nil, &Error{Kind: KindAPI, Err: redactKey(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, &Error{Kind: KindTimeout, Status: resp.StatusCode, Err: err}
		}
		return nil, &Error{Kind: KindAPI, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindAPI, Status: resp.StatusCode, Body: clipBody(raw)}
	}

	var out restResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{Kind: KindAPI, Status: resp.StatusCode, Body: clipBody(raw), Err: err}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return nil, &Error{Kind: KindEmptyResponse, Status: resp.StatusCode}
	}

	return &Result{
		Text: out.Candidates[0].Content.Parts[0].Text,
		Usage: &schema.TokenUsage{
			PromptTokens:     out.UsageMetadata.PromptTokenCount,
			CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      out.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// redactKey strips the query string from *url.Error so the key never reaches logs.
func redactKey(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		if u, perr := url.Parse(ue.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
		}
	}
	return err
}

var _ Provider = (*RESTProvider)(nil)
