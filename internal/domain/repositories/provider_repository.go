package repositories

import (
	"context"

	"github.com/mhbaltimore/directory/internal/domain/entities"
)

// ProviderRepository defines the read operations over provider listings
type ProviderRepository interface {
	// Match returns one page of active providers satisfying criteria and the
	// total number of matches independent of the page window.
	Match(ctx context.Context, criteria entities.MatchCriteria) ([]*entities.Provider, int, error)

	// GetByID retrieves an active provider by ID
	GetByID(ctx context.Context, id string) (*entities.Provider, error)
}

// OrganizationRepository defines the read operations over organization listings
type OrganizationRepository interface {
	// Match returns one page of active organizations satisfying criteria and
	// the total number of matches independent of the page window.
	Match(ctx context.Context, criteria entities.MatchCriteria) ([]*entities.Organization, int, error)

	// GetByID retrieves an active organization by ID
	GetByID(ctx context.Context, id string) (*entities.Organization, error)
}

// RatingRepository reads provider review aggregates
type RatingRepository interface {
	// GetByProviderIDs returns the aggregates that exist for the given
	// providers, keyed by provider ID. Providers without reviews are absent.
	GetByProviderIDs(ctx context.Context, providerIDs []string) (map[string]*entities.ProviderRating, error)
}
