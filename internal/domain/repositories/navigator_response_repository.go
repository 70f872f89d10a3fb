package repositories

import (
	"context"

	"github.com/mhbaltimore/directory/internal/domain/entities"
)

// NavigatorResponseRepository defines persistence for questionnaire snapshots
type NavigatorResponseRepository interface {
	// Create stores a new response; ID and timestamps are filled in
	Create(ctx context.Context, response *entities.NavigatorResponse) error

	// GetByID retrieves a response, NOT_FOUND if it does not exist
	GetByID(ctx context.Context, id string) (*entities.NavigatorResponse, error)

	// MarkResultsViewed records that results were shown and how many matched.
	// Repeating the same call is harmless.
	MarkResultsViewed(ctx context.Context, id string, resultsCount int) error
}
