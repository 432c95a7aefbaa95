package repo

import (
	"context"
	"sync"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
)

type MemoryOptionRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryOptionRepository() *MemoryOptionRepository {
	return &MemoryOptionRepository{values: make(map[string]string)}
}

func (r *MemoryOptionRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *MemoryOptionRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *MemoryOptionRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

var _ model.OptionRepository = (*MemoryOptionRepository)(nil)
