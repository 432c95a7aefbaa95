package model

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ConversationTurn is one stored message.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	PageURL   string    `json:"page_url,omitempty"`
	PageTitle string    `json:"page_title,omitempty"`
}

// SessionMeta identifies a logical conversation. It is replaced on clear.
type SessionMeta struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

// SessionStats summarises a conversation for the client.
type SessionStats struct {
	Count     int       `json:"count"`
	UserCount int       `json:"user_count"`
	BotCount  int       `json:"bot_count"`
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

// ConversationRepository persists bounded per-session history keyed by an opaque session token.
type ConversationRepository interface {
	// Append adds a turn and evicts the oldest entries beyond the configured bound.
	Append(ctx context.Context, token string, turn ConversationTurn) error

	// History returns stored turns in insertion order.
	History(ctx context.Context, token string) ([]ConversationTurn, error)

	// Clear removes all turns for the token.
	Clear(ctx context.Context, token string) error

	// Meta returns the session metadata; found is false when none was saved.
	Meta(ctx context.Context, token string) (meta SessionMeta, found bool, err error)

	// SaveMeta replaces the session metadata.
	SaveMeta(ctx context.Context, token string, meta SessionMeta) error
}
