package cache

import (
	"context"
	"testing"
	"time"

	"yatube/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Title string
	IDs   []uint
}

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, time.Minute), mr
}

func backends(t *testing.T) map[string]FeedCache {
	l, err := NewLRU(16, time.Minute)
	require.NoError(t, err)
	r, _ := newRedis(t)
	return map[string]FeedCache{"lru": l, "redis": r}
}

func TestFeedCache_SetGet(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c.Set(ctx, IndexKey(1), entry{Title: "first", IDs: []uint{3, 2, 1}})

			var got entry
			require.True(t, c.Get(ctx, IndexKey(1), &got))
			assert.Equal(t, "first", got.Title)
			assert.Equal(t, []uint{3, 2, 1}, got.IDs)

			var missing entry
			assert.False(t, c.Get(ctx, IndexKey(2), &missing))
		})
	}
}

func TestFeedCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c.Set(ctx, "k", entry{IDs: []uint{1}})

			var a entry
			require.True(t, c.Get(ctx, "k", &a))
			a.IDs[0] = 99

			var b entry
			require.True(t, c.Get(ctx, "k", &b))
			assert.Equal(t, uint(1), b.IDs[0])
		})
	}
}

func TestFeedCache_InvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c.Set(ctx, IndexKey(1), entry{Title: "p1"})
			c.Set(ctx, IndexKey(2), entry{Title: "p2"})
			c.Set(ctx, GroupKey("cats", 1), entry{Title: "cats"})

			c.InvalidatePrefix(ctx, IndexPrefix)

			var e entry
			assert.False(t, c.Get(ctx, IndexKey(1), &e))
			assert.False(t, c.Get(ctx, IndexKey(2), &e))
			assert.True(t, c.Get(ctx, GroupKey("cats", 1), &e))
		})
	}
}

func TestLRU_Expiry(t *testing.T) {
	c, err := NewLRU(4, time.Millisecond)
	require.NoError(t, err)
	c.Set(context.Background(), "k", entry{Title: "x"})
	time.Sleep(5 * time.Millisecond)

	var e entry
	assert.False(t, c.Get(context.Background(), "k", &e))
}

func TestRedis_TTL(t *testing.T) {
	c, mr := newRedis(t)
	c.Set(context.Background(), "k", entry{Title: "x"})
	mr.FastForward(2 * time.Minute)

	var e entry
	assert.False(t, c.Get(context.Background(), "k", &e))
}

func TestRedis_ServerDown(t *testing.T) {
	c, mr := newRedis(t)
	mr.Close()

	var e entry
	assert.False(t, c.Get(context.Background(), "k", &e))
	c.Set(context.Background(), "k", entry{})
	c.InvalidatePrefix(context.Background(), "k")
}

func TestNew(t *testing.T) {
	cfg := config.Default()

	cfg.CacheBackend = "none"
	c, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, c)

	cfg.CacheBackend = "lru"
	c, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &LRU{}, c)

	mr := miniredis.RunT(t)
	cfg.CacheBackend = "redis"
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"
	c, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, c)

	cfg.RedisURL = "not a url"
	_, err = New(cfg)
	assert.Error(t, err)
}
