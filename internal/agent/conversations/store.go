// Package conversations owns bounded per-session chat history.
package conversations

import (
	"context"
	"fmt"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/google/uuid"
)

const DefaultMaxTurns = 20

type Store struct {
	repo         model.ConversationRepository
	contextTurns int
	now          func() time.Time
	newID        func() string
}

func NewStore(repo model.ConversationRepository, config model.ConversationConfig) *Store {
	return &Store{
		repo:         repo,
		contextTurns: config.ContextTurns,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
}

// ContextTurns is how many recent turns feed the grounding context.
func (s *Store) ContextTurns() int {
	return s.contextTurns
}

// Session returns a handle on the conversation identified by token.
func (s *Store) Session(token string) *Conversation {
	return &Conversation{store: s, token: token}
}

// Conversation is one visitor's history. Requests for the same token are expected to be serial.
type Conversation struct {
	store *Store
	token string
}

func (c *Conversation) AppendUser(ctx context.Context, text, pageURL, pageTitle string) error {
	return c.append(ctx, model.ConversationTurn{
		Role:      model.RoleUser,
		Text:      text,
		PageURL:   pageURL,
		PageTitle: pageTitle,
	})
}

func (c *Conversation) AppendBot(ctx context.Context, text string) error {
	return c.append(ctx, model.ConversationTurn{Role: model.RoleBot, Text: text})
}

func (c *Conversation) append(ctx context.Context, turn model.ConversationTurn) error {
	if _, err := c.meta(ctx); err != nil {
		return err
	}
	turn.Timestamp = c.store.now()
	if err := c.store.repo.Append(ctx, c.token, turn); err != nil {
		return fmt.Errorf("append %s turn: %w", turn.Role, err)
	}
	return nil
}

func (c *Conversation) History(ctx context.Context) ([]model.ConversationTurn, error) {
	turns, err := c.store.repo.History(ctx, c.token)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return turns, nil
}

// Clear empties history and starts a new logical session with a fresh id.
func (c *Conversation) Clear(ctx context.Context) error {
	if err := c.store.repo.Clear(ctx, c.token); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	meta := model.SessionMeta{SessionID: c.store.newID(), StartedAt: c.store.now()}
	if err := c.store.repo.SaveMeta(ctx, c.token, meta); err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}
	logx.Debug().Str("session_id", meta.SessionID).Msg("conversation cleared")
	return nil
}

func (c *Conversation) Stats(ctx context.Context) (model.SessionStats, error) {
	meta, err := c.meta(ctx)
	if err != nil {
		return model.SessionStats{}, err
	}
	turns, err := c.History(ctx)
	if err != nil {
		return model.SessionStats{}, err
	}
	return StatsOf(turns, meta), nil
}

// StatsOf counts turns by role.
func StatsOf(turns []model.ConversationTurn, meta model.SessionMeta) model.SessionStats {
	stats := model.SessionStats{Count: len(turns), SessionID: meta.SessionID, StartedAt: meta.StartedAt}
	for _, t := range turns {
		switch t.Role {
		case model.RoleUser:
			stats.UserCount++
		case model.RoleBot:
			stats.BotCount++
		}
	}
	return stats
}

// meta loads the session metadata, creating it on first use.
func (c *Conversation) meta(ctx context.Context) (model.SessionMeta, error) {
	meta, found, err := c.store.repo.Meta(ctx, c.token)
	if err != nil {
		return model.SessionMeta{}, fmt.Errorf("load session: %w", err)
	}
	if found {
		return meta, nil
	}
	meta = model.SessionMeta{SessionID: c.store.newID(), StartedAt: c.store.now()}
	if err := c.store.repo.SaveMeta(ctx, c.token, meta); err != nil {
		return model.SessionMeta{}, fmt.Errorf("start session: %w", err)
	}
	return meta, nil
}
