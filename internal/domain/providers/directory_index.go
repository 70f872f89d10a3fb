package providers

import (
	"context"

	"github.com/mhbaltimore/directory/internal/domain/entities"
)

// DirectoryIndex is the name-autocomplete index over active listings
type DirectoryIndex interface {
	// EnsureCollection creates the backing collection if it does not exist
	EnsureCollection(ctx context.Context) error

	// Upsert indexes or replaces entries
	Upsert(ctx context.Context, entries []*entities.DirectoryEntry) error

	// Suggest returns up to limit entries whose names match the prefix query
	Suggest(ctx context.Context, query string, limit int) ([]*entities.DirectoryEntry, error)
}
