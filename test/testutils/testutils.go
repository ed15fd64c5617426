package testutils

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"eightify/utils"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var setupOnce sync.Once

// SetupTestEnvironment loads the project .env, if any, and points the
// stores at test databases.
func SetupTestEnvironment() {
	setupOnce.Do(func() {
		if rootDir := findProjectRoot(); rootDir != "" {
			envPath := filepath.Join(rootDir, ".env")
			if err := godotenv.Load(envPath); err == nil {
				log.Printf("Loaded .env file from: %s", envPath)
			}
		}

		os.Setenv("GO_ENV", "test")
		if os.Getenv("TEST_MONGO_URI") == "" {
			os.Setenv("TEST_MONGO_URI", utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"))
		}
		if os.Getenv("MONGO_DB_TEST") == "" {
			os.Setenv("MONGO_DB_TEST", "eightify_test")
		}
		if os.Getenv("TEST_REDIS_ADDR") == "" {
			os.Setenv("TEST_REDIS_ADDR", "localhost:6379")
		}
	})
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// SetupTestDB connects to the test database and returns a cleanup function
// that drops it. The test is skipped when MongoDB is unreachable.
func SetupTestDB(t *testing.T) (*mongo.Database, func()) {
	t.Helper()
	SetupTestEnvironment()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := utils.NewMongoClient(ctx, utils.MongoOptions{
		URI:             os.Getenv("TEST_MONGO_URI"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 0),
		MaxConnIdleTime: 60 * time.Second,
		RetryWrites:     true,
	})
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	db := client.Database(os.Getenv("MONGO_DB_TEST"))
	cleanup := func() {
		t.Helper()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.Drop(ctx); err != nil {
			t.Logf("Warning: Failed to drop test database %s: %v", db.Name(), err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: Failed to disconnect: %v", err)
		}
	}
	return db, cleanup
}

// SetupTestRedis returns a client on a scratch Redis database, flushed
// before and after the test. The test is skipped when Redis is unreachable.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	SetupTestEnvironment()

	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("TEST_REDIS_ADDR"),
		DB:   1,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}
