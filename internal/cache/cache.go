// Package cache holds the rendered-feed cache used by the index, group and profile pages.
package cache

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/config"

	"github.com/redis/go-redis/v9"
)

// FeedCache stores feed pages between requests. Values are JSON-encoded so callers
// always get their own copy back.
type FeedCache interface {
	// Get decodes the entry under key into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
	// InvalidatePrefix drops every entry whose key starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string)
}

// Key prefixes for feed pages.
const (
	IndexPrefix = "feed:index:"
)

func IndexKey(page int) string {
	return fmt.Sprintf("%spage:%d", IndexPrefix, page)
}

func GroupPrefix(slug string) string {
	return "feed:group:" + slug + ":"
}

func GroupKey(slug string, page int) string {
	return fmt.Sprintf("%spage:%d", GroupPrefix(slug), page)
}

func ProfilePrefix(username string) string {
	return "feed:profile:" + username + ":"
}

func ProfileKey(username string, page int) string {
	return fmt.Sprintf("%spage:%d", ProfilePrefix(username), page)
}

// New builds the backend selected by cfg.CacheBackend.
func New(cfg *config.Config) (FeedCache, error) {
	switch cfg.CacheBackend {
	case "none":
		return Nop{}, nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return NewRedis(client, cfg.CacheTTL), nil
	default:
		return NewLRU(cfg.CacheSize, cfg.CacheTTL)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) bool    { return false }
func (Nop) Set(context.Context, string, any)         {}
func (Nop) InvalidatePrefix(context.Context, string) {}
