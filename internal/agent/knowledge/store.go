// Package knowledge loads the knowledge base and API settings from the option
// store and keeps TTL-bounded copies in process.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/patrickmn/go-cache"
)

const knowledgeCacheKey = "knowledge"

// Hook runs after a successful save.
type Hook func(ctx context.Context)

type hooks struct {
	mu    sync.RWMutex
	items []Hook
}

func (h *hooks) add(fn Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = append(h.items, fn)
}

func (h *hooks) fire(ctx context.Context) {
	h.mu.RLock()
	items := append([]Hook(nil), h.items...)
	h.mu.RUnlock()
	for _, fn := range items {
		fn(ctx)
	}
}

type Store struct {
	options model.OptionRepository
	cache   *cache.Cache
	ttl     time.Duration
	hooks   hooks
}

func NewStore(options model.OptionRepository, ttl time.Duration) *Store {
	return &Store{
		options: options,
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// OnSave registers fn to run after every successful Save.
func (s *Store) OnSave(fn Hook) {
	s.hooks.add(fn)
}

// Load returns the knowledge base. Read failures and malformed data degrade
// to the empty default.
func (s *Store) Load(ctx context.Context) model.KnowledgeBase {
	if v, ok := s.cache.Get(knowledgeCacheKey); ok {
		return clone(v.(model.KnowledgeBase))
	}

	kb := model.DefaultKnowledgeBase()
	raw, found, err := s.options.Get(ctx, model.OptionKnowledge)
	switch {
	case err != nil:
		logx.Warn().Err(err).Msg("knowledge read failed; using empty knowledge base")
		return kb
	case found:
		var stored model.KnowledgeBase
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			logx.Warn().Err(err).Msg("knowledge base is not valid JSON; using empty knowledge base")
			return kb
		}
		kb = stored.Normalize()
	}

	s.cache.Set(knowledgeCacheKey, clone(kb), s.ttl)
	return kb
}

// Save persists kb and fires the save hooks.
func (s *Store) Save(ctx context.Context, kb model.KnowledgeBase) error {
	kb = kb.Normalize()
	for name := range kb {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty section name", model.ErrInvalidSection)
		}
	}
	b, err := json.Marshal(kb)
	if err != nil {
		return fmt.Errorf("marshal knowledge: %w", err)
	}
	if err := s.options.Set(ctx, model.OptionKnowledge, string(b)); err != nil {
		return fmt.Errorf("save knowledge: %w", err)
	}
	s.Invalidate()
	s.hooks.fire(ctx)
	logx.Info().Int("sections", len(kb)).Msg("knowledge base saved")
	return nil
}

// SetSection updates a single section, keeping the others.
func (s *Store) SetSection(ctx context.Context, name, content string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty section name", model.ErrInvalidSection)
	}
	s.Invalidate()
	kb := s.Load(ctx)
	kb[name] = content
	return s.Save(ctx, kb)
}

// Invalidate drops the cached copy.
func (s *Store) Invalidate() {
	s.cache.Delete(knowledgeCacheKey)
}

func clone(kb model.KnowledgeBase) model.KnowledgeBase {
	out := make(model.KnowledgeBase, len(kb))
	for k, v := range kb {
		out[k] = v
	}
	return out
}
