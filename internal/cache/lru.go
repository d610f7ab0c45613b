package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"yatube/internal/logger"
	"yatube/internal/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// cacheItem 包装缓存数据和过期时间
type cacheItem struct {
	Data      []byte
	ExpiresAt time.Time
}

// LRU is an in-process FeedCache with a per-entry TTL.
type LRU struct {
	lruCache *lru.Cache[string, cacheItem]
	ttl      time.Duration
}

func NewLRU(size int, ttl time.Duration) (*LRU, error) {
	if size <= 0 {
		size = 500
	}
	l, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, err
	}
	return &LRU{lruCache: l, ttl: ttl}, nil
}

func (c *LRU) Get(_ context.Context, key string, dst any) bool {
	val, ok := c.lruCache.Get(key)
	if !ok {
		metrics.CacheMisses.Inc()
		return false
	}
	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(val.Data, dst); err != nil {
		logger.L().Warn("cache entry decode failed", zap.String("key", key), zap.Error(err))
		c.lruCache.Remove(key)
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

func (c *LRU) Set(_ context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.L().Warn("cache entry encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.lruCache.Add(key, cacheItem{Data: data, ExpiresAt: time.Now().Add(c.ttl)})
}

func (c *LRU) InvalidatePrefix(_ context.Context, prefix string) {
	for _, key := range c.lruCache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lruCache.Remove(key)
		}
	}
}
