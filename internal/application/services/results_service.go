package services

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/providers"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// ResultsService composes the matching pipeline: normalize the filter, resolve
// the navigator snapshot, merge criteria, query both entity types and
// assemble the page.
type ResultsService struct {
	normalizer    *FilterNormalizer
	resolver      *NavigatorResolver
	providers     repositories.ProviderRepository
	organizations repositories.OrganizationRepository
	ratings       repositories.RatingRepository
	recorder      providers.ResultsViewRecorder
}

// NewResultsService creates a new results service
func NewResultsService(
	normalizer *FilterNormalizer,
	resolver *NavigatorResolver,
	providerRepo repositories.ProviderRepository,
	organizationRepo repositories.OrganizationRepository,
	ratingRepo repositories.RatingRepository,
	recorder providers.ResultsViewRecorder,
) *ResultsService {
	return &ResultsService{
		normalizer:    normalizer,
		resolver:      resolver,
		providers:     providerRepo,
		organizations: organizationRepo,
		ratings:       ratingRepo,
		recorder:      recorder,
	}
}

func asInternal(msg string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.NewInternalError(msg, err)
}

// GetResults runs the whole pipeline for one results request
func (s *ResultsService) GetResults(ctx context.Context, params url.Values) (*entities.ResultsResponse, error) {
	ctx, span := observability.StartSpan(ctx, "ResultsService.GetResults")
	defer span.End()

	filter, err := s.normalizer.Normalize(params)
	if err != nil {
		return nil, err
	}

	nav, err := s.resolver.Resolve(ctx, filter.ResponseID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	criteria := MergeCriteria(filter, nav)
	span.SetAttributes(
		attribute.Bool("results.navigator", nav != nil),
		attribute.Bool("results.urgent", criteria.Urgent),
		attribute.String("results.sort_by", criteria.SortBy),
		attribute.Int("results.page", criteria.Page),
	)

	var (
		providerRows            []*entities.Provider
		orgRows                 []*entities.Organization
		providerTotal, orgTotal int
	)

	g, gctx := errgroup.WithContext(ctx)
	if criteria.IncludeProviders {
		g.Go(func() error {
			rows, total, err := s.providers.Match(gctx, criteria)
			if err != nil {
				return asInternal("failed to match providers", err)
			}
			providerRows, providerTotal = rows, total
			return nil
		})
	}
	if criteria.IncludeOrganizations {
		g.Go(func() error {
			rows, total, err := s.organizations.Match(gctx, criteria)
			if err != nil {
				return asInternal("failed to match organizations", err)
			}
			orgRows, orgTotal = rows, total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	ratings := map[string]*entities.ProviderRating{}
	if len(providerRows) > 0 {
		ids := make([]string, len(providerRows))
		for i, p := range providerRows {
			ids[i] = p.ID
		}
		ratings, err = s.ratings.GetByProviderIDs(ctx, ids)
		if err != nil {
			observability.RecordError(span, err)
			return nil, asInternal("failed to load provider ratings", err)
		}
	}

	response := &entities.ResultsResponse{
		Providers:      make([]*entities.ProviderCard, 0, len(providerRows)),
		Organizations:  make([]*entities.OrganizationCard, 0, len(orgRows)),
		TotalCount:     providerTotal + orgTotal,
		Page:           criteria.Page,
		Limit:          criteria.Limit,
		FiltersApplied: criteria,
	}
	for _, p := range providerRows {
		response.Providers = append(response.Providers, ToProviderCard(p, ratings[p.ID]))
	}
	for _, o := range orgRows {
		response.Organizations = append(response.Organizations, ToOrganizationCard(o))
	}
	response.HasMore = criteria.HasMore(response.TotalCount)

	if nav != nil {
		s.recorder.RecordResultsViewed(ctx, nav.ID, response.TotalCount)
	}

	return response, nil
}
