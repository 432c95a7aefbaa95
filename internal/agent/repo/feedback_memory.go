package repo

import (
	"context"
	"sync"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
)

type MemoryFeedbackRepository struct {
	mu      sync.RWMutex
	entries []model.Feedback
}

func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{}
}

func (r *MemoryFeedbackRepository) Append(_ context.Context, fb model.Feedback, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, fb)
	if limit > 0 && len(r.entries) > limit {
		r.entries = append([]model.Feedback(nil), r.entries[len(r.entries)-limit:]...)
	}
	return nil
}

func (r *MemoryFeedbackRepository) List(_ context.Context) ([]model.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Feedback(nil), r.entries...), nil
}

var _ model.FeedbackRepository = (*MemoryFeedbackRepository)(nil)
