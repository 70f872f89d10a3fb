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

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/mhbaltimore/directory/internal/adapters/cache"
	"github.com/mhbaltimore/directory/internal/adapters/database"
	"github.com/mhbaltimore/directory/internal/adapters/search"
	"github.com/mhbaltimore/directory/internal/adapters/tasks"
	"github.com/mhbaltimore/directory/internal/api/handlers"
	"github.com/mhbaltimore/directory/internal/api/middleware"
	"github.com/mhbaltimore/directory/internal/api/routes"
	"github.com/mhbaltimore/directory/internal/application/services"
	"github.com/mhbaltimore/directory/internal/domain/providers"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/redis"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/typesense"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	"github.com/mhbaltimore/directory/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env, cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	providerRepo := database.NewProviderAdapter(pgClient, metrics)
	organizationRepo := database.NewOrganizationAdapter(pgClient, metrics)
	navigatorRepo := database.NewNavigatorResponseAdapter(pgClient, metrics)
	ratingRepo := database.NewRatingAdapter(pgClient, metrics)

	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, serving ratings from PostgreSQL only")
		} else {
			defer redisClient.Close()
			ratingRepo = database.NewCachedRatingAdapter(ratingRepo, cache.NewRedisAdapter(redisClient), metrics)
			log.Info().Msg("Rating cache enabled")
		}
	}

	var recorder providers.ResultsViewRecorder
	switch cfg.Results.WriteBackMode {
	case config.WriteBackQueue:
		queueClient := asynq.NewClient(tasks.RedisOpt(&cfg.Redis))
		defer queueClient.Close()
		recorder = tasks.NewQueueViewRecorder(queueClient, metrics)
	default:
		recorder = services.NewInlineViewRecorder(navigatorRepo, metrics)
	}
	log.Info().Str("mode", cfg.Results.WriteBackMode).Msg("Results-viewed write-back configured")

	var index providers.DirectoryIndex
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, directory suggestions disabled")
		} else {
			index = search.NewTypesenseAdapter(tsClient)
		}
	}

	resultsService := services.NewResultsService(
		services.NewFilterNormalizer(cfg.Results.DefaultLimit, cfg.Results.MaxLimit),
		services.NewNavigatorResolver(navigatorRepo),
		providerRepo,
		organizationRepo,
		ratingRepo,
		recorder,
	)
	navigatorService := services.NewNavigatorService(navigatorRepo)
	directoryService := services.NewDirectoryService(providerRepo, organizationRepo, ratingRepo, index)

	var rateLimiter *middleware.RateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, cfg.Server.TrustedProxies)
		go rateLimiter.Run(ctx)
	}

	router := routes.NewRouter(
		handlers.NewHealthHandler(pgClient),
		handlers.NewResultsHandler(resultsService),
		handlers.NewNavigatorHandler(navigatorService),
		handlers.NewDirectoryHandler(directoryService),
		rateLimiter,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
