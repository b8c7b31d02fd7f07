package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"stockmatch/internal/domain"
)

// SentimentCache guarda analisis generados por el LLM. Las fallas de cache se tratan como miss.
type SentimentCache interface {
	Get(ctx context.Context, key string) (domain.SentimentAnalysis, bool)
	Set(ctx context.Context, key string, analysis domain.SentimentAnalysis, ttl time.Duration)
}

type cacheEntry struct {
	analysis  domain.SentimentAnalysis
	expiresAt time.Time
}

type memorySentimentCache struct {
	mu    sync.Mutex
	items map[string]cacheEntry
}

func NewMemorySentimentCache() SentimentCache {
	return &memorySentimentCache{items: make(map[string]cacheEntry)}
}

func (c *memorySentimentCache) Get(_ context.Context, key string) (domain.SentimentAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return domain.SentimentAnalysis{}, false
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, key)
		return domain.SentimentAnalysis{}, false
	}
	return entry.analysis, true
}

func (c *memorySentimentCache) Set(_ context.Context, key string, analysis domain.SentimentAnalysis, ttl time.Duration) {
	if strings.TrimSpace(key) == "" || ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{analysis: analysis, expiresAt: time.Now().UTC().Add(ttl)}
}

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisSentimentCache struct {
	client redisKVClient
	prefix string
}

func NewRedisSentimentCache(client *redis.Client) SentimentCache {
	if client == nil {
		return nil
	}
	return &redisSentimentCache{
		client: client,
		prefix: "sentiment:",
	}
}

func (c *redisSentimentCache) Get(ctx context.Context, key string) (domain.SentimentAnalysis, bool) {
	if strings.TrimSpace(key) == "" {
		return domain.SentimentAnalysis{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return domain.SentimentAnalysis{}, false
	}
	var analysis domain.SentimentAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return domain.SentimentAnalysis{}, false
	}
	return analysis, true
}

func (c *redisSentimentCache) Set(ctx context.Context, key string, analysis domain.SentimentAnalysis, ttl time.Duration) {
	if strings.TrimSpace(key) == "" || ttl <= 0 {
		return
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, c.prefix+key, payload, ttl).Err()
}
