package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"eightify/config"
	"eightify/handler"
	"eightify/middleware"
	"eightify/model"
	"eightify/repository"
	"eightify/services"
	"eightify/usecase"
	"eightify/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const shutdownTimeout = 10 * time.Second

// loadEnv reads .env and stops the process when a required variable is missing.
func loadEnv() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"JWT_SECRET_KEY",
		"MONGO_URI",
	}

	log.Println("Environment variables:")
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Printf("%s: not set", envVar)
		} else {
			log.Printf("%s: set", envVar)
		}
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}
}

// server bundles what the router needs.
type server struct {
	cfg      config.AppConfig
	clock    utils.Clock
	users    *usecase.UserService
	stats    *usecase.StatsService
	circles  *usecase.CircleService
	registry *usecase.Registry
	checks   map[string]handler.HealthCheck
}

func setupRouter(s *server) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		middleware.EnhancedRecoveryMiddleware(),
		middleware.RequestTracingMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(s.cfg.AllowedOrigins...),
		middleware.RequestSizeLimiter(middleware.DefaultMaxBodySize),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	timerHandler := handler.NewTimerHandler(s.registry)
	authHandler := handler.NewAuthHandler(s.users, s.registry)
	statsHandler := handler.NewStatsHandler(s.stats, s.clock)
	circleHandler := handler.NewCircleHandler(s.circles, s.clock)
	healthHandler := handler.NewHealthHandler(s.checks, s.registry)

	api := router.Group("/api")
	api.Use(
		middleware.ValidateClientHeaders(),
		middleware.ClientSessionMiddleware(),
		middleware.CacheControlMiddleware("no-store"),
	)
	api.GET("/health", healthHandler.GetHealth)
	api.POST("/auth/signin", authHandler.SignIn)

	// Guests and signed-in users share the timer routes
	timer := api.Group("")
	timer.Use(middleware.OptionalAuthMiddleware(s.users))
	{
		timer.GET("/timer", timerHandler.GetTimer)
		timer.POST("/timer/start", timerHandler.StartTimer)
		timer.POST("/timer/stop", timerHandler.StopTimer)
		timer.GET("/timer/stream", timerHandler.StreamTimer)
		timer.GET("/totals", timerHandler.GetTotals)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.users))
	{
		protected.POST("/auth/signout", authHandler.SignOut)
		protected.GET("/auth/me", authHandler.GetProfile)

		stats := protected.Group("/stats")
		{
			stats.GET("/daily", statsHandler.GetDailySummary)
			stats.GET("/activities", statsHandler.GetTimeline)
		}

		circles := protected.Group("/circles")
		{
			circles.POST("", circleHandler.CreateCircle)
			circles.POST("/join", circleHandler.JoinCircle)
			circles.GET("/mine", circleHandler.GetMyCircle)
			circles.GET("/mine/leaderboard", circleHandler.GetLeaderboard)
			circles.GET("/mine/feed", circleHandler.GetFeed)
		}
	}

	return router
}

// activityPublisher is the event sink plus its shutdown hook.
type activityPublisher interface {
	usecase.ActivityPublisher
	Close() error
}

func main() {
	loadEnv()
	utils.InitValidator()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultLoc := model.LoadLocation(cfg.Tracker.DefaultTimezone, time.UTC)

	mongoClient, err := utils.NewMongoClient(ctx, utils.MongoOptions{
		URI:             cfg.Database.URI,
		MaxPoolSize:     cfg.Database.MaxPoolSize,
		MinPoolSize:     cfg.Database.MinPoolSize,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		RetryWrites:     cfg.Database.RetryWrites,
	})
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	db := mongoClient.Database(cfg.Database.DatabaseName)
	if err := repository.SetupIndexes(db); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	checks := map[string]handler.HealthCheck{
		"mongo": func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		},
	}

	var (
		guest     usecase.GuestStore
		blacklist usecase.TokenBlacklist
	)
	redisClient, err := services.NewRedisClient(cfg.GuestStore.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, keeping guest data in memory: %v", err)
		guest = services.NewMemoryGuestStore()
		blacklist = services.NewMemoryTokenBlacklist()
	} else {
		store, err := services.NewRedisGuestStore(redisClient, cfg.GuestStore.Flavor, cfg.GuestStore.SessionTTL)
		if err != nil {
			log.Fatalf("Invalid guest storage configuration: %v", err)
		}
		guest = store
		blacklist = services.NewRedisTokenBlacklist(redisClient)
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	var events activityPublisher = services.NoopActivityPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		log.Printf("Publishing activity events to %s", cfg.KafkaTopic)
		events = services.NewKafkaActivityPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Tracker.PersistTimeout)
	}

	tokens, err := utils.NewTokenIssuer(cfg.Auth.JWTSecretKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpirationTime)
	if err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	durable := repository.GetDurableStore(db)
	userRepo := repository.GetUserRepo(db)
	circleRepo := repository.GetCircleRepo(db)
	clock := utils.RealClock{}

	registry := usecase.NewRegistry(usecase.TrackerOptions{
		Guest:          guest,
		Durable:        durable,
		Events:         events,
		Clock:          clock,
		Location:       defaultLoc,
		TickInterval:   cfg.Tracker.TickInterval,
		GuestKeyPrefix: cfg.GuestStore.KeyPrefix,
		PersistTimeout: cfg.Tracker.PersistTimeout,
	}, cfg.Tracker.IdleTTL)
	registry.StartRolloverTask(ctx, cfg.Tracker.RolloverInterval)
	registry.StartCleanupTask(ctx, cfg.Tracker.CleanupInterval)

	router := setupRouter(&server{
		cfg:      cfg,
		clock:    clock,
		users:    usecase.NewUserService(userRepo, tokens, blacklist),
		stats:    usecase.NewStatsService(durable, durable),
		circles:  usecase.NewCircleService(circleRepo, userRepo, durable, durable, clock),
		registry: registry,
		checks:   checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open timer streams end when the process is told to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")
	shutdown(srv, events, redisClient, mongoClient)
	log.Println("Server shutdown complete")
}

func shutdown(srv *http.Server, events activityPublisher, redisClient *redis.Client, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	if err := events.Close(); err != nil {
		log.Printf("Error closing event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting MongoDB: %v", err)
	}
}
