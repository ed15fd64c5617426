package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	FlavorLocal   = "local"
	FlavorSession = "session"
)

// RedisGuestStore is the ephemeral key-value store behind guest snapshots.
// The local flavor keeps keys until removed; the session flavor gives every
// write a sliding TTL so abandoned guest sessions disappear.
type RedisGuestStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses the URL and checks the connection.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return client, nil
}

func NewRedisGuestStore(client *redis.Client, flavor string, sessionTTL time.Duration) (*RedisGuestStore, error) {
	store := &RedisGuestStore{client: client}
	switch flavor {
	case FlavorLocal, "":
	case FlavorSession:
		if sessionTTL <= 0 {
			return nil, fmt.Errorf("session guest storage needs a positive TTL")
		}
		store.ttl = sessionTTL
	default:
		return nil, fmt.Errorf("unknown guest storage flavor %q", flavor)
	}
	return store, nil
}

func (s *RedisGuestStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %v", key, err)
	}
	return value, true, nil
}

func (s *RedisGuestStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %v", key, err)
	}
	return nil
}

func (s *RedisGuestStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %v", key, err)
	}
	return nil
}

func (s *RedisGuestStore) IsConnected(ctx context.Context) bool {
	return s != nil && s.client != nil && s.client.Ping(ctx).Err() == nil
}

// MemoryGuestStore keeps guest snapshots in process memory. It is the
// fallback when Redis is unreachable so the timer stays usable offline.
type MemoryGuestStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryGuestStore() *MemoryGuestStore {
	return &MemoryGuestStore{data: make(map[string]string)}
}

func (s *MemoryGuestStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryGuestStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *MemoryGuestStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
