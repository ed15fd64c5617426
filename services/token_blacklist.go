package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenBlacklist remembers signed-out tokens until they would have expired.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{Client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:access:%s", token)
}

func (tb *RedisTokenBlacklist) Blacklist(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil // already unusable
	}
	if err := tb.Client.Set(ctx, blacklistKey(token), "true", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %v", err)
	}
	return nil
}

func (tb *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, token string) bool {
	n, err := tb.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		log.Printf("Error checking token blacklist: %v", err)
		return false
	}
	return n > 0
}

// MemoryTokenBlacklist is used when Redis is unavailable.
type MemoryTokenBlacklist struct {
	mu    sync.RWMutex
	until map[string]time.Time
}

func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{until: make(map[string]time.Time)}
}

func (tb *MemoryTokenBlacklist) Blacklist(_ context.Context, token string, expiresAt time.Time) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	now := time.Now()
	for t, exp := range tb.until {
		if !now.Before(exp) {
			delete(tb.until, t)
		}
	}
	if now.Before(expiresAt) {
		tb.until[token] = expiresAt
	}
	return nil
}

func (tb *MemoryTokenBlacklist) IsBlacklisted(_ context.Context, token string) bool {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	exp, ok := tb.until[token]
	return ok && time.Now().Before(exp)
}
