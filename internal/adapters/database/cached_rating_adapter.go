package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/providers"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
)

// ratingTTL is how long an aggregate may be served from cache (seconds)
const ratingTTL = 300

const ratingCacheFamily = "rating"

func ratingCacheKey(providerID string) string {
	return fmt.Sprintf("rating:provider:%s", providerID)
}

// CachedRatingAdapter wraps a RatingRepository with a read-through cache.
// Providers without reviews are cached as a zero-count aggregate so repeat
// pages do not hit the database for them either.
type CachedRatingAdapter struct {
	adapter repositories.RatingRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedRatingAdapter creates a new cached rating adapter
func NewCachedRatingAdapter(adapter repositories.RatingRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.RatingRepository {
	return &CachedRatingAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// GetByProviderIDs serves cached aggregates and fetches the rest in one batch
func (a *CachedRatingAdapter) GetByProviderIDs(ctx context.Context, providerIDs []string) (map[string]*entities.ProviderRating, error) {
	ratings := make(map[string]*entities.ProviderRating, len(providerIDs))
	if len(providerIDs) == 0 {
		return ratings, nil
	}

	keys := make([]string, len(providerIDs))
	for i, id := range providerIDs {
		keys[i] = ratingCacheKey(id)
	}

	logger := observability.LoggerFromContext(ctx)
	cached, err := a.cache.GetMulti(ctx, keys)
	if err != nil {
		logger.Warn().Err(err).Msg("rating cache read failed, falling back to database")
		cached = nil
	}

	var missing []string
	for i, id := range providerIDs {
		data, ok := cached[keys[i]]
		if !ok {
			missing = append(missing, id)
			continue
		}
		var rating entities.ProviderRating
		if err := json.Unmarshal(data, &rating); err != nil {
			missing = append(missing, id)
			continue
		}
		if rating.ReviewCount > 0 {
			ratings[id] = &rating
		}
	}

	observability.RecordCacheHit(ctx, a.metrics, ratingCacheFamily, len(providerIDs)-len(missing))
	observability.RecordCacheMiss(ctx, a.metrics, ratingCacheFamily, len(missing))

	if len(missing) == 0 {
		return ratings, nil
	}

	fetched, err := a.adapter.GetByProviderIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	items := make(map[string][]byte, len(missing))
	for _, id := range missing {
		rating, ok := fetched[id]
		if ok {
			ratings[id] = rating
		} else {
			rating = &entities.ProviderRating{ProviderID: id}
		}
		if data, err := json.Marshal(rating); err == nil {
			items[ratingCacheKey(id)] = data
		}
	}

	// Backfill asynchronously to avoid blocking the response
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.cache.SetMulti(bgCtx, items, ratingTTL); err != nil {
			logger.Warn().Err(err).Int("count", len(items)).Msg("failed to cache provider ratings")
		}
	}()

	return ratings, nil
}
