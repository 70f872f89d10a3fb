package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

const providerRatingsTable = "provider_ratings"

// RatingAdapter implements the RatingRepository interface
type RatingAdapter struct {
	baseAdapter
}

// NewRatingAdapter creates a new rating adapter
func NewRatingAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.RatingRepository {
	return &RatingAdapter{baseAdapter: newBaseAdapter(client, metrics)}
}

// GetByProviderIDs batch-fetches rating aggregates in one query
func (a *RatingAdapter) GetByProviderIDs(ctx context.Context, providerIDs []string) (map[string]*entities.ProviderRating, error) {
	ratings := make(map[string]*entities.ProviderRating, len(providerIDs))
	if len(providerIDs) == 0 {
		return ratings, nil
	}

	query, args, err := a.db.From(providerRatingsTable).
		Select("provider_id", "review_count", "average_rating").
		Where(goqu.C("provider_id").In(providerIDs)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	var rows []*entities.ProviderRating
	if err := a.client.X().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to get provider ratings", err)
	}
	observability.RecordDBMetric(ctx, a.metrics, "provider_ratings.batch", time.Since(start))

	for _, r := range rows {
		ratings[r.ProviderID] = r
	}
	return ratings, nil
}
