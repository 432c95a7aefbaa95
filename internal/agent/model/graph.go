package model

import "time"

// ChatRequest is one inbound widget message.
type ChatRequest struct {
	SessionToken string `json:"-"`
	Message      string `json:"message"`
	PageContent  string `json:"page_content,omitempty"`
	PageURL      string `json:"page_url,omitempty"`
	PageTitle    string `json:"page_title,omitempty"`
}

type ResponseSource string

const (
	SourceLLM      ResponseSource = "llm"
	SourceCache    ResponseSource = "cache"
	SourceFallback ResponseSource = "fallback"
)

// ChatReply is the engine output for one ChatRequest.
type ChatReply struct {
	Response     string         `json:"response"`
	Suggestions  []string       `json:"suggestions"`
	SessionStats SessionStats   `json:"session_stats"`
	Timestamp    time.Time      `json:"timestamp"`
	Source       ResponseSource `json:"-"`
}

// TurnState is the per-invocation working value passed between graph nodes.
// Each Invoke builds a fresh one; nodes run sequentially so no locking is needed.
type TurnState struct {
	Request   ChatRequest
	Settings  APISettings
	Knowledge KnowledgeBase
	// History is the conversation before the current message was appended.
	History []ConversationTurn

	Grounding string
	System    string
	CacheKey  string

	Raw    string
	GenErr error

	Response string
	Source   ResponseSource
	Topic    string
	Started  time.Time
}
