package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mhbaltimore/directory/internal/adapters/database"
	"github.com/mhbaltimore/directory/internal/adapters/search"
	"github.com/mhbaltimore/directory/internal/application/services"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/typesense"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	"github.com/mhbaltimore/directory/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the directory collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.App.Env, cfg.App.LogLevel)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}
	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil || interval <= 0 {
			log.Fatal().Str("interval", intervalValue).Msg("Interval must be a positive duration")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Typesense client")
	}
	index := search.NewTypesenseAdapter(tsClient)

	directory := services.NewDirectoryService(
		database.NewProviderAdapter(pgClient, nil),
		database.NewOrganizationAdapter(pgClient, nil),
		database.NewRatingAdapter(pgClient, nil),
		index,
	)

	for {
		if reset {
			if err := index.DropCollection(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to reset directory collection")
			}
			reset = false
		}

		start := time.Now()
		indexed, err := directory.Reindex(ctx)
		if err != nil {
			log.Error().Err(err).Int("indexed", indexed).Msg("Reindex failed")
		} else {
			log.Info().Int("indexed", indexed).Dur("took", time.Since(start)).Msg("Reindex complete")
		}

		if interval <= 0 {
			return
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("Indexer stopped")
			return
		case <-time.After(interval):
		}
	}
}
