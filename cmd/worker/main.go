package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/mhbaltimore/directory/internal/adapters/database"
	"github.com/mhbaltimore/directory/internal/adapters/tasks"
	"github.com/mhbaltimore/directory/internal/application/services"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	"github.com/mhbaltimore/directory/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-worker", cfg.App.Env, cfg.App.LogLevel)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	navigatorRepo := database.NewNavigatorResponseAdapter(pgClient, nil)

	srv := asynq.NewServer(tasks.RedisOpt(&cfg.Redis), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeResultsViewed, tasks.NewResultsViewedHandler(
		func(ctx context.Context, responseID string, resultsCount int) error {
			return services.MarkResultsViewed(ctx, navigatorRepo, responseID, resultsCount)
		},
	))

	log.Info().Str("redis", cfg.Redis.RedisAddr()).Msg("Worker starting")
	// Run blocks until SIGINT or SIGTERM, then drains in-flight tasks
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("Worker stopped with error")
	}
}
