package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/termination/collab-text-editor/handlers"
	"github.com/termination/collab-text-editor/internal/config"
	"github.com/termination/collab-text-editor/internal/database"
	"github.com/termination/collab-text-editor/internal/document"
	docrepo "github.com/termination/collab-text-editor/internal/document/repository"
	docservice "github.com/termination/collab-text-editor/internal/document/service"
	"github.com/termination/collab-text-editor/internal/password"
	"github.com/termination/collab-text-editor/internal/relay"
	"github.com/termination/collab-text-editor/internal/users"
	"github.com/termination/collab-text-editor/pkg/logger"
	"github.com/termination/collab-text-editor/pkg/metrics"
	"github.com/termination/collab-text-editor/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v origin=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.CORS.AllowedOrigin)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigin))

	ctx := context.Background()

	// Connect to Redis early: it backs the edit broker and, when enabled,
	// the distributed rate limiter.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Edit broker: Redis pub/sub when available so broadcasts cross server
	// instances, otherwise a single-process broker.
	var broker relay.Broker
	if redisClient != nil {
		broker = relay.NewRedisBroker(redisClient)
	} else {
		logger.Warnf("no Redis configured; using in-process broker (single instance only)")
		broker = relay.NewMemoryBroker()
	}

	// Document and user stores: MongoDB when configured, in-memory for dev.
	var userRepo users.UserRepository
	var documentRepo docrepo.Repository
	if cfg.MongoDB.URI != "" {
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		mongoClient, errConn := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		for attempt := 2; errConn != nil && attempt <= maxAttempts; attempt++ {
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt-1, maxAttempts, errConn)
			time.Sleep(backoff)
			backoff *= 2
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = mongoClient.Disconnect(ctx) }()

		db := mongoClient.Database(cfg.MongoDB.Database)
		userRepo = users.NewMongoUserRepository(db.Collection("users"))
		documentRepo = docrepo.NewMongoRepo(db.Collection("documents"))
		logger.Infof("Using MongoDB database %q", cfg.MongoDB.Database)
	} else {
		logger.Warnf("no MongoDB configured; using in-memory stores (data is lost on restart)")
		userRepo = users.NewMemoryUserRepository()
		documentRepo = docrepo.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo, password.NewBcryptHasher())
	docSvc := docservice.NewService(documentRepo, document.NewIDGenerator(nil))

	// Start the edit relay: it stamps each published edit and rebroadcasts
	// it on the document's channel.
	editRelay := relay.New(broker)
	go func() {
		if err := editRelay.Run(ctx); err != nil && err != context.Canceled {
			logger.Errorf("relay stopped: %v", err)
		}
	}()

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint: 200 only when the stores behind the API respond
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"store": true, "broker": true}
		ready := true
		if redisClient != nil {
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				deps["broker"] = false
				ready = false
			}
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	root := r.Group("/")
	handlers.NewAuthHandler(userSvc).Register(root)
	handlers.NewDocumentHandler(docSvc).Register(root)
	handlers.NewCollabHandler(broker, cfg.CORS.AllowedOrigin).Register(root)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting collab editor service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
