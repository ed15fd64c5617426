package config

import (
	"time"

	"eightify/utils"
)

// DatabaseConfig configures the durable document store.
type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

// GuestStoreConfig configures the ephemeral guest store. Flavor "local"
// keeps snapshots until removed; "session" expires them after SessionTTL
// without a write.
type GuestStoreConfig struct {
	RedisURL   string
	Flavor     string
	SessionTTL time.Duration
	KeyPrefix  string
}

type AuthConfig struct {
	JWTSecretKey      string
	JWTIssuer         string
	JWTExpirationTime time.Duration
}

type TrackerConfig struct {
	DefaultTimezone  string
	RolloverInterval time.Duration
	TickInterval     time.Duration
	IdleTTL          time.Duration
	CleanupInterval  time.Duration
	// PersistTimeout bounds every storage and event write.
	PersistTimeout time.Duration
}

type AppConfig struct {
	Port           string
	Database       DatabaseConfig
	GuestStore     GuestStoreConfig
	Auth           AuthConfig
	Tracker        TrackerConfig
	KafkaBrokers   []string
	KafkaTopic     string
	AllowedOrigins []string
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "eightify"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

func LoadGuestStoreConfig() GuestStoreConfig {
	return GuestStoreConfig{
		RedisURL:   utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		Flavor:     utils.GetEnvAsString("GUEST_STORAGE", "local"),
		SessionTTL: utils.GetEnvAsDuration("GUEST_SESSION_TTL", 30*time.Minute),
		KeyPrefix:  utils.GetEnvAsString("GUEST_KEY_PREFIX", "timeTrackerData"),
	}
}

func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecretKey:      utils.GetEnvAsString("JWT_SECRET_KEY", ""),
		JWTIssuer:         utils.GetEnvAsString("JWT_ISSUER", "eightify"),
		JWTExpirationTime: time.Duration(utils.GetEnvAsInt("JWT_EXPIRATION_TIME", 3600)) * time.Second,
	}
}

func LoadTrackerConfig() TrackerConfig {
	return TrackerConfig{
		DefaultTimezone:  utils.GetEnvAsString("DEFAULT_TIMEZONE", "UTC"),
		RolloverInterval: utils.GetEnvAsDuration("ROLLOVER_INTERVAL", time.Minute),
		TickInterval:     utils.GetEnvAsDuration("TICK_INTERVAL", time.Second),
		IdleTTL:          utils.GetEnvAsDuration("TRACKER_IDLE_TTL", 12*time.Hour),
		CleanupInterval:  utils.GetEnvAsDuration("TRACKER_CLEANUP_INTERVAL", 15*time.Minute),
		PersistTimeout:   utils.GetEnvAsDuration("PERSIST_TIMEOUT", 5*time.Second),
	}
}

// Load reads the whole application configuration from the environment.
func Load() AppConfig {
	return AppConfig{
		Port:           utils.GetEnvAsString("PORT", "8080"),
		Database:       LoadDatabaseConfig(),
		GuestStore:     LoadGuestStoreConfig(),
		Auth:           LoadAuthConfig(),
		Tracker:        LoadTrackerConfig(),
		KafkaBrokers:   utils.GetEnvAsStringSlice("KAFKA_BROKERS", nil),
		KafkaTopic:     utils.GetEnvAsString("KAFKA_ACTIVITY_TOPIC", "eightify.activity.recorded"),
		AllowedOrigins: utils.GetEnvAsStringSlice("CORS_ALLOWED_ORIGINS", nil),
	}
}
