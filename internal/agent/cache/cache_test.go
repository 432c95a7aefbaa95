package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = model.APISettings{Enabled: true, APIKey: "k", Model: "gemini-1.5-pro", Temperature: 0.4, MaxTokens: 800, IncludePageContent: true}

func TestKey(t *testing.T) {
	t.Parallel()

	base := Key("What do you do?", settings, "page")
	assert.Equal(t, base, Key("  what   DO you do? ", settings, "page"))

	other := settings
	other.Temperature = 0.7
	assert.NotEqual(t, base, Key("What do you do?", other, "page"))

	other = settings
	other.Model = "gemini-1.5-flash"
	assert.NotEqual(t, base, Key("What do you do?", other, "page"))

	assert.NotEqual(t, base, Key("What do you do?", settings, "another page"))

	noPage := settings
	noPage.IncludePageContent = false
	assert.NotEqual(t, base, Key("What do you do?", noPage, "page"))
	assert.Equal(t, Key("What do you do?", noPage, "page"), Key("What do you do?", noPage, "different page"))
}

func TestGetIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(time.Hour, nil)
	key := Key("hello", settings, "")

	v1, ok1 := c.Get(ctx, key)
	v2, ok2 := c.Get(ctx, key)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, v1, v2)
	assert.False(t, ok1)

	c.Put(ctx, key, "Hi there, how can I help?", 0)
	v1, ok1 = c.Get(ctx, key)
	v2, ok2 = c.Get(ctx, key)
	require.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, v1, v2)
}

func TestInvalidateAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(time.Hour, nil)
	c.Put(ctx, "a", "1", 0)
	c.Put(ctx, "b", "2", 0)
	require.Equal(t, 2, c.Len())

	require.NoError(t, c.InvalidateAll(ctx))
	assert.Zero(t, c.Len())
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestPutExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(time.Hour, nil)
	c.Put(ctx, "k", "v", 20*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisSharedAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	a := New(time.Hour, rdb)
	b := New(time.Hour, rdb)
	key := Key("What do you do?", settings, "")

	a.Put(ctx, key, "We build websites.", 10*time.Minute)
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	v, ok := b.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "We build websites.", v)
	assert.Equal(t, 1, b.Len())
}

func TestInvalidateAll_ScansRedisPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	c := New(time.Hour, rdb)

	for i := 0; i < 250; i++ {
		c.Put(ctx, Key(fmt.Sprintf("question %d", i), settings, ""), "answer", 0)
	}
	require.NoError(t, mr.Set("option:sa_helper_chatbot_options", "{}"))
	require.Len(t, mr.Keys(), 251)

	require.NoError(t, c.InvalidateAll(ctx))
	assert.Zero(t, c.Len())
	assert.Equal(t, []string{"option:sa_helper_chatbot_options"}, mr.Keys())

	_, ok := c.Get(ctx, Key("question 1", settings, ""))
	assert.False(t, ok)
}

func TestRedisFailureIsAMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	c := New(time.Hour, rdb)
	mr.Close()

	c.Put(ctx, "k", "v", 0)
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok, "L1 still serves")
	assert.Equal(t, "v", v)

	_, ok = c.Get(ctx, "other")
	assert.False(t, ok)
	assert.Error(t, c.InvalidateAll(ctx))
}
