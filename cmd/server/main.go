package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roarrealty/internal/cache"
	"roarrealty/internal/config"
	"roarrealty/internal/handler"
	"roarrealty/internal/observability"
	"roarrealty/internal/repository"
	"roarrealty/internal/retry"
	"roarrealty/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.App.Name, cfg.App.Environment, cfg.App.LogLevel)
	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("roarrealty chat assistant starting")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Property datastore
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open property store")
	}
	defer store.Close()

	// Optional filter options cache
	var cacheProvider cache.Provider
	if cfg.Redis.Addr != "" {
		client, err := openRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, filter options will not be cached")
		} else {
			defer client.Close()
			cacheProvider = cache.NewRedisAdapter(client)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// Completion service
	gateway := service.NewOpenAIClient(cfg.LLM)
	if !gateway.IsEnabled() {
		log.Warn().Msg("LLM_API_KEY is not set; every reply will use the fallback messages")
	}

	// Initialize services
	searchService := service.NewPropertySearchService(store, cfg.Search.ResultLimit)
	chatService := service.NewChatService(
		service.NewIntentClassifier(gateway),
		service.NewFilterExtractor(gateway),
		searchService,
		service.NewResponseComposer(gateway, cfg.Company),
		cfg.Company,
		service.WithSearchLogger(searchService),
	)
	filterService := service.NewFilterOptionsService(store, cacheProvider, cfg.Redis.FilterOptionsTTL)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService, filterService, cfg.IsDevelopment())

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), observability.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    cfg.App.Name,
			"storage":    cfg.Storage.Driver,
			"cache":      cacheProvider != nil,
			"llm":        gateway.IsEnabled(),
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	chatHandler.RegisterRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shut down")
	}
	log.Info().Msg("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (repository.PropertyStore, error) {
	switch cfg.Storage.Driver {
	case "memory":
		if cfg.Storage.SeedFile == "" {
			log.Warn().Msg("memory store has no seed file, searches will return nothing")
			return repository.NewMemoryRepository(), nil
		}
		return repository.LoadMemoryRepository(cfg.Storage.SeedFile)
	default:
		return repository.NewPostgresRepository(
			ctx,
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
	}
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	policy := retry.DefaultConfig()
	policy.MaxTotalTimeout = 10 * time.Second

	var client *redis.Client
	err := retry.Do(ctx, policy, "redis", func() error {
		c, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		client = c
		return err
	})
	return client, err
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "OPTIONS"}
	c.AllowHeaders = []string{"Content-Type", "Authorization", observability.RequestIDHeader}
	c.ExposeHeaders = []string{observability.RequestIDHeader}

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
