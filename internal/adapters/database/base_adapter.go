package database

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
)

// baseAdapter carries the handles every postgres adapter needs
type baseAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

func newBaseAdapter(client *postgres.Client, metrics *observability.Metrics) baseAdapter {
	return baseAdapter{
		client:  client,
		db:      goqu.New(dialect, client.DB()),
		metrics: metrics,
	}
}
