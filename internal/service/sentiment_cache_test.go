package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"stockmatch/internal/domain"
)

type mockRedisKVClient struct {
	store      map[string][]byte
	lastSetKey string
	lastSetTTL time.Duration
	getErr     error
	setErr     error
}

func (m *mockRedisKVClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	v, ok := m.store[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(v))
	return cmd
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	if m.store == nil {
		m.store = map[string][]byte{}
	}
	m.store[key] = value.([]byte)
	cmd.SetVal("OK")
	return cmd
}

func TestMemorySentimentCache(t *testing.T) {
	c := NewMemorySentimentCache()
	ctx := context.Background()
	if _, ok := c.Get(ctx, "AAPL"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set(ctx, "AAPL", domain.SentimentAnalysis{Ticker: "AAPL", OverallScore: 0.5}, 40*time.Millisecond)
	got, ok := c.Get(ctx, "AAPL")
	if !ok || got.OverallScore != 0.5 {
		t.Fatalf("expected hit, got %+v %v", got, ok)
	}
	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get(ctx, "AAPL"); ok {
		t.Fatalf("expected expired entry")
	}
	c.Set(ctx, "MSFT", domain.SentimentAnalysis{Ticker: "MSFT"}, 0)
	if _, ok := c.Get(ctx, "MSFT"); ok {
		t.Fatalf("expected zero ttl to skip caching")
	}
}

func TestRedisSentimentCache(t *testing.T) {
	mock := &mockRedisKVClient{}
	c := &redisSentimentCache{client: mock, prefix: "sentiment:"}
	ctx := context.Background()

	if _, ok := c.Get(ctx, "AAPL"); ok {
		t.Fatalf("expected miss")
	}

	in := domain.SentimentAnalysis{Ticker: "AAPL", MarketTrend: domain.TrendBullish, Source: domain.SourceAI}
	c.Set(ctx, "AAPL", in, time.Hour)
	if mock.lastSetKey != "sentiment:AAPL" || mock.lastSetTTL != time.Hour {
		t.Fatalf("unexpected set %q %v", mock.lastSetKey, mock.lastSetTTL)
	}
	var stored domain.SentimentAnalysis
	if err := json.Unmarshal(mock.store["sentiment:AAPL"], &stored); err != nil || stored.Ticker != "AAPL" {
		t.Fatalf("expected json payload, got %s (%v)", mock.store["sentiment:AAPL"], err)
	}

	got, ok := c.Get(ctx, "AAPL")
	if !ok || got.MarketTrend != domain.TrendBullish {
		t.Fatalf("expected hit, got %+v %v", got, ok)
	}
}

func TestRedisSentimentCache_ErrorsAreMisses(t *testing.T) {
	mock := &mockRedisKVClient{
		store:  map[string][]byte{"sentiment:BAD": []byte("not json")},
		setErr: errors.New("set failed"),
	}
	c := &redisSentimentCache{client: mock, prefix: "sentiment:"}
	ctx := context.Background()

	if _, ok := c.Get(ctx, "BAD"); ok {
		t.Fatalf("expected corrupt payload to be a miss")
	}
	c.Set(ctx, "AAPL", domain.SentimentAnalysis{Ticker: "AAPL"}, time.Hour)

	mock.getErr = errors.New("redis down")
	if _, ok := c.Get(ctx, "AAPL"); ok {
		t.Fatalf("expected miss on redis error")
	}
}
