package services

import (
	"context"
	"testing"
	"time"

	"eightify/test/testutils"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuestStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryGuestStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Set(ctx, "k", "v2"))
	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Remove(ctx, "k"))
	_, ok, _ = store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewRedisGuestStoreFlavors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	local, err := NewRedisGuestStore(client, FlavorLocal, 0)
	require.NoError(t, err)
	assert.Zero(t, local.ttl)

	session, err := NewRedisGuestStore(client, FlavorSession, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, session.ttl)

	_, err = NewRedisGuestStore(client, FlavorSession, 0)
	assert.Error(t, err)
	_, err = NewRedisGuestStore(client, "cookie", time.Minute)
	assert.Error(t, err)
}

func TestRedisGuestStore(t *testing.T) {
	client := testutils.SetupTestRedis(t)
	ctx := context.Background()
	store, err := NewRedisGuestStore(client, FlavorSession, time.Minute)
	require.NoError(t, err)

	key := "timeTrackerData:test-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { client.Del(context.Background(), key) })

	require.NoError(t, store.Set(ctx, key, `{"accumulated":{"productive":5}}`))
	value, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, value, "productive")

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Remove(ctx, key))
	_, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTokenBlacklist(t *testing.T) {
	client := testutils.SetupTestRedis(t)
	ctx := context.Background()
	blacklist := NewRedisTokenBlacklist(client)

	token := "token-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { client.Del(context.Background(), blacklistKey(token)) })

	assert.False(t, blacklist.IsBlacklisted(ctx, token))
	require.NoError(t, blacklist.Blacklist(ctx, token, time.Now().Add(time.Minute)))
	assert.True(t, blacklist.IsBlacklisted(ctx, token))
	require.NoError(t, blacklist.Blacklist(ctx, "expired", time.Now().Add(-time.Minute)))
	assert.False(t, blacklist.IsBlacklisted(ctx, "expired"))
}

func TestMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	blacklist := NewMemoryTokenBlacklist()
	require.NoError(t, blacklist.Blacklist(ctx, "a", time.Now().Add(time.Minute)))
	require.NoError(t, blacklist.Blacklist(ctx, "b", time.Now().Add(-time.Minute)))
	assert.True(t, blacklist.IsBlacklisted(ctx, "a"))
	assert.False(t, blacklist.IsBlacklisted(ctx, "b"))
	assert.False(t, blacklist.IsBlacklisted(ctx, "c"))
}
