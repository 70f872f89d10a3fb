package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/providers"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

const (
	defaultSuggestLimit = 8
	maxSuggestLimit     = 25
	indexBatchSize      = 100
)

// DirectoryService serves profile lookups and name suggestions
type DirectoryService struct {
	providers     repositories.ProviderRepository
	organizations repositories.OrganizationRepository
	ratings       repositories.RatingRepository
	index         providers.DirectoryIndex
}

// NewDirectoryService creates a new directory service. index may be nil when
// no search backend is configured.
func NewDirectoryService(
	providerRepo repositories.ProviderRepository,
	organizationRepo repositories.OrganizationRepository,
	ratingRepo repositories.RatingRepository,
	index providers.DirectoryIndex,
) *DirectoryService {
	return &DirectoryService{
		providers:     providerRepo,
		organizations: organizationRepo,
		ratings:       ratingRepo,
		index:         index,
	}
}

// GetProviderCard returns the public card of an active provider
func (s *DirectoryService) GetProviderCard(ctx context.Context, id string) (*entities.ProviderCard, error) {
	provider, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.GetByProviderIDs(ctx, []string{provider.ID})
	if err != nil {
		return nil, asInternal("failed to load provider rating", err)
	}
	return ToProviderCard(provider, ratings[provider.ID]), nil
}

// GetOrganizationCard returns the public card of an active organization
func (s *DirectoryService) GetOrganizationCard(ctx context.Context, id string) (*entities.OrganizationCard, error) {
	org, err := s.organizations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrganizationCard(org), nil
}

// SuggestEnabled reports whether a search backend is configured
func (s *DirectoryService) SuggestEnabled() bool {
	return s.index != nil
}

// Suggest returns names matching the typed prefix
func (s *DirectoryService) Suggest(ctx context.Context, query string, limit int) ([]*entities.DirectoryEntry, error) {
	query = strings.TrimSpace(query)
	var violations []apperrors.FieldError
	if query == "" {
		violations = append(violations, apperrors.FieldError{Field: "q", Message: "is required"})
	}
	if limit < 0 || limit > maxSuggestLimit {
		violations = append(violations, apperrors.FieldError{Field: "limit", Message: "must be between 1 and 25"})
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidationError("invalid suggestion request", violations...)
	}
	if limit == 0 {
		limit = defaultSuggestLimit
	}
	if s.index == nil {
		return []*entities.DirectoryEntry{}, nil
	}

	entries, err := s.index.Suggest(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewExternalError("directory suggestions unavailable", err)
	}
	return entries, nil
}

// providerEntry builds the index document of a provider
func providerEntry(p *entities.Provider) *entities.DirectoryEntry {
	subtitle := p.ProviderType
	if p.Credentials != nil && *p.Credentials != "" {
		subtitle = *p.Credentials
	}
	return &entities.DirectoryEntry{
		ID:       p.ID,
		Kind:     entities.KindProvider,
		Name:     p.FullName(),
		Subtitle: subtitle,
		City:     p.City,
		ZipCode:  p.ZipCode,
		Issues:   p.Issues,
		Featured: p.IsFeatured,
	}
}

// organizationEntry builds the index document of an organization
func organizationEntry(o *entities.Organization) *entities.DirectoryEntry {
	return &entities.DirectoryEntry{
		ID:       o.ID,
		Kind:     entities.KindOrganization,
		Name:     o.Name,
		Subtitle: o.OrganizationType,
		City:     o.City,
		ZipCode:  o.ZipCode,
		Issues:   o.IssuesAddressed,
		Featured: o.IsFeatured,
	}
}

// allActive is the criteria that pages through every active listing by name
func allActive(page int) entities.MatchCriteria {
	return entities.MatchCriteria{
		IncludeProviders:     true,
		IncludeOrganizations: true,
		SortBy:               entities.SortName,
		SortOrder:            entities.SortAsc,
		Page:                 page,
		Limit:                indexBatchSize,
	}
}

// Reindex pages through every active provider and organization and upserts
// them into the suggestion index. Returns the number of indexed entries.
func (s *DirectoryService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, apperrors.NewInternalError("no directory index configured", nil)
	}
	if err := s.index.EnsureCollection(ctx); err != nil {
		return 0, err
	}

	indexed := 0
	for page := 1; ; page++ {
		rows, total, err := s.providers.Match(ctx, allActive(page))
		if err != nil {
			return indexed, err
		}
		entries := make([]*entities.DirectoryEntry, len(rows))
		for i, p := range rows {
			entries[i] = providerEntry(p)
		}
		if err := s.index.Upsert(ctx, entries); err != nil {
			return indexed, err
		}
		indexed += len(entries)
		if len(rows) == 0 || page*indexBatchSize >= total {
			break
		}
	}

	for page := 1; ; page++ {
		rows, total, err := s.organizations.Match(ctx, allActive(page))
		if err != nil {
			return indexed, err
		}
		entries := make([]*entities.DirectoryEntry, len(rows))
		for i, o := range rows {
			entries[i] = organizationEntry(o)
		}
		if err := s.index.Upsert(ctx, entries); err != nil {
			return indexed, err
		}
		indexed += len(entries)
		if len(rows) == 0 || page*indexBatchSize >= total {
			break
		}
	}

	log.Info().Int("indexed", indexed).Msg("directory index rebuilt")
	return indexed, nil
}
