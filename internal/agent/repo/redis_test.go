package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisConversationRepository_BoundedFIFO(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	r := NewRedisConversationRepository(rdb, time.Hour, 20)

	for i := 0; i < 25; i++ {
		require.NoError(t, r.Append(ctx, "tok", model.ConversationTurn{Role: model.RoleUser, Text: fmt.Sprintf("m%d", i)}))
	}

	turns, err := r.History(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, turns, 20)
	assert.Equal(t, "m5", turns[0].Text)
	assert.Equal(t, "m24", turns[19].Text)
	assert.Equal(t, model.RoleUser, turns[0].Role)

	assert.Equal(t, time.Hour, mr.TTL(conversationKey("tok")))
	rows, err := mr.List(conversationKey("tok"))
	require.NoError(t, err)
	assert.Len(t, rows, 20)
}

func TestRedisConversationRepository_MetaAndExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	r := NewRedisConversationRepository(rdb, time.Minute, 20)

	_, found, err := r.Meta(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, found)

	started := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.SaveMeta(ctx, "tok", model.SessionMeta{SessionID: "s1", StartedAt: started}))
	require.NoError(t, r.Append(ctx, "tok", model.ConversationTurn{Text: "hello"}))

	meta, found, err := r.Meta(ctx, "tok")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "s1", meta.SessionID)
	assert.True(t, started.Equal(meta.StartedAt))

	require.NoError(t, r.Clear(ctx, "tok"))
	turns, err := r.History(ctx, "tok")
	require.NoError(t, err)
	assert.Empty(t, turns)
	_, found, err = r.Meta(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, found)

	mr.FastForward(2 * time.Minute)
	_, found, err = r.Meta(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisConversationRepository_CorruptMetaIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	r := NewRedisConversationRepository(rdb, time.Minute, 20)
	require.NoError(t, mr.Set(sessionMetaKey("tok"), "{not json"))

	_, found, err := r.Meta(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisConversationRepository_Unavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	r := NewRedisConversationRepository(rdb, time.Minute, 20)
	mr.Close()

	assert.Error(t, r.Append(ctx, "tok", model.ConversationTurn{Text: "hello"}))
	_, err := r.History(ctx, "tok")
	assert.Error(t, err)
}

func TestRedisOptionRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	r := NewRedisOptionRepository(rdb)

	_, found, err := r.Get(ctx, model.OptionKnowledge)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, r.Set(ctx, model.OptionKnowledge, `{"faq":"x"}`))
	v, found, err := r.Get(ctx, model.OptionKnowledge)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"faq":"x"}`, v)

	stored, err := mr.Get(optionKey(model.OptionKnowledge))
	require.NoError(t, err)
	assert.Equal(t, `{"faq":"x"}`, stored)
	assert.Zero(t, mr.TTL(optionKey(model.OptionKnowledge)))

	require.NoError(t, r.Delete(ctx, model.OptionKnowledge))
	assert.False(t, mr.Exists(optionKey(model.OptionKnowledge)))
	_, found, err = r.Get(ctx, model.OptionKnowledge)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisFeedbackRepository_Cap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	r := NewRedisFeedbackRepository(rdb)

	for i := 0; i < 105; i++ {
		require.NoError(t, r.Append(ctx, model.Feedback{Kind: model.FeedbackPositive, Message: fmt.Sprint(i)}, model.MaxFeedbackEntries))
	}
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 100)
	assert.Equal(t, "5", list[0].Message)
	assert.Equal(t, "104", list[99].Message)

	_, err = mr.Push(feedbackKey, "not json")
	require.NoError(t, err)
	list, err = r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 100)
}
