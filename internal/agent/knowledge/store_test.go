package knowledge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOptions struct{}

func (failingOptions) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store down")
}
func (failingOptions) Set(context.Context, string, string) error { return errors.New("store down") }
func (failingOptions) Delete(context.Context, string) error      { return errors.New("store down") }

func TestStore_RoundTripAfterInvalidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := repo.NewMemoryOptionRepository()
	s := NewStore(opts, 30*time.Minute)

	assert.Equal(t, model.DefaultKnowledgeBase(), s.Load(ctx))

	want := "<p>Acme builds <b>websites</b> since 2010.</p>"
	require.NoError(t, s.SetSection(ctx, model.SectionCompanyInfo, want))

	s.Invalidate()
	kb := s.Load(ctx)
	assert.Equal(t, want, kb.Section(model.SectionCompanyInfo))
	assert.Equal(t, "", kb.Section(model.SectionFAQ))
}

func TestStore_CachedUntilSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := repo.NewMemoryOptionRepository()
	s := NewStore(opts, 30*time.Minute)
	_ = s.Load(ctx)

	// written behind the store's back: not visible until invalidation
	require.NoError(t, opts.Set(ctx, model.OptionKnowledge, `{"faq":"Q&A"}`))
	assert.Equal(t, "", s.Load(ctx).Section(model.SectionFAQ))

	s.Invalidate()
	assert.Equal(t, "Q&A", s.Load(ctx).Section(model.SectionFAQ))
}

func TestStore_LoadReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(repo.NewMemoryOptionRepository(), time.Minute)
	kb := s.Load(ctx)
	kb[model.SectionFAQ] = "mutated"
	assert.Equal(t, "", s.Load(ctx).Section(model.SectionFAQ))
}

func TestStore_DegradesOnErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, model.DefaultKnowledgeBase(), NewStore(failingOptions{}, time.Minute).Load(ctx))

	opts := repo.NewMemoryOptionRepository()
	require.NoError(t, opts.Set(ctx, model.OptionKnowledge, "{not json"))
	assert.Equal(t, model.DefaultKnowledgeBase(), NewStore(opts, time.Minute).Load(ctx))
}

func TestStore_SaveFiresHooks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(repo.NewMemoryOptionRepository(), time.Minute)
	calls := 0
	s.OnSave(func(context.Context) { calls++ })

	require.NoError(t, s.Save(ctx, model.KnowledgeBase{model.SectionRecentNews: "Launched v2"}))
	assert.Equal(t, 1, calls)

	err := s.SetSection(ctx, "  ", "x")
	assert.ErrorIs(t, err, model.ErrInvalidSection)
	assert.Equal(t, 1, calls)
}
