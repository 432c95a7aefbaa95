package repo

import (
	"context"
	"sync"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
)

type memoryConversation struct {
	turns     []model.ConversationTurn
	meta      *model.SessionMeta
	touchedAt time.Time
}

// MemoryConversationRepository keeps conversations in process. Idle sessions
// read as empty once ttl passes and are dropped by the next write that runs a
// sweep, at most one sweep per ttl.
type MemoryConversationRepository struct {
	mu       sync.RWMutex
	sessions map[string]*memoryConversation
	ttl      time.Duration
	maxTurns int
	now      func() time.Time
	sweptAt  time.Time
}

func NewMemoryConversationRepository(ttl time.Duration, maxTurns int) *MemoryConversationRepository {
	return &MemoryConversationRepository{
		sessions: make(map[string]*memoryConversation),
		ttl:      ttl,
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

// get returns the live entry for token; callers hold at least the read lock.
func (r *MemoryConversationRepository) get(token string) *memoryConversation {
	c, ok := r.sessions[token]
	if !ok {
		return nil
	}
	if r.expired(c, r.now()) {
		return nil
	}
	return c
}

func (r *MemoryConversationRepository) touch(token string) *memoryConversation {
	r.sweep()
	c := r.get(token)
	if c == nil {
		c = &memoryConversation{}
		r.sessions[token] = c
	}
	c.touchedAt = r.now()
	return c
}

func (r *MemoryConversationRepository) expired(c *memoryConversation, now time.Time) bool {
	return r.ttl > 0 && now.Sub(c.touchedAt) > r.ttl
}

// sweep deletes expired sessions; callers hold the write lock.
func (r *MemoryConversationRepository) sweep() {
	if r.ttl <= 0 {
		return
	}
	now := r.now()
	if now.Sub(r.sweptAt) < r.ttl {
		return
	}
	r.sweptAt = now
	for token, c := range r.sessions {
		if r.expired(c, now) {
			delete(r.sessions, token)
		}
	}
}

func (r *MemoryConversationRepository) Append(_ context.Context, token string, turn model.ConversationTurn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.touch(token)
	c.turns = append(c.turns, turn)
	if r.maxTurns > 0 && len(c.turns) > r.maxTurns {
		c.turns = append([]model.ConversationTurn(nil), c.turns[len(c.turns)-r.maxTurns:]...)
	}
	return nil
}

func (r *MemoryConversationRepository) History(_ context.Context, token string) ([]model.ConversationTurn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.get(token)
	if c == nil {
		return []model.ConversationTurn{}, nil
	}
	return append([]model.ConversationTurn(nil), c.turns...), nil
}

func (r *MemoryConversationRepository) Clear(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c := r.get(token); c != nil {
		c.turns = nil
	}
	return nil
}

func (r *MemoryConversationRepository) Meta(_ context.Context, token string) (model.SessionMeta, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.get(token)
	if c == nil || c.meta == nil {
		return model.SessionMeta{}, false, nil
	}
	return *c.meta, true, nil
}

func (r *MemoryConversationRepository) SaveMeta(_ context.Context, token string, meta model.SessionMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.touch(token)
	c.meta = &meta
	return nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
