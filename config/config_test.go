package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("TICK_INTERVAL", "not-a-duration")
	t.Setenv("PORT", "9090")
	t.Setenv("ROLLOVER_INTERVAL", "30s")
	t.Setenv("GUEST_STORAGE", "session")
	t.Setenv("PERSIST_TIMEOUT", "-2s")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Tracker.RolloverInterval)
	assert.Equal(t, "session", cfg.GuestStore.Flavor)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, time.Second, cfg.Tracker.TickInterval)
	assert.Equal(t, 5*time.Second, cfg.Tracker.PersistTimeout)
}

func TestLoadPersistTimeout(t *testing.T) {
	t.Setenv("PERSIST_TIMEOUT", "1500ms")
	assert.Equal(t, 1500*time.Millisecond, Load().Tracker.PersistTimeout)
}

func TestLoadKafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	cfg := Load()
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}
