package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

const providersTable = "providers"

var providerColumns = []interface{}{
	"id", "first_name", "last_name", "credentials", "provider_type", "gender",
	"bio", "photo_url", "phone", "email", "website", "address", "city", "state",
	"zip_code", "issues", "age_groups", "service_formats", "payment_types",
	"insurance_providers", "languages", "availability_status",
	"typical_wait_weeks", "is_active", "is_verified", "is_featured",
	"created_at", "updated_at",
}

// ProviderAdapter implements the ProviderRepository interface
type ProviderAdapter struct {
	baseAdapter
}

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.ProviderRepository {
	return &ProviderAdapter{baseAdapter: newBaseAdapter(client, metrics)}
}

// filtered applies every provider predicate of criteria; no ordering or paging.
func (a *ProviderAdapter) filtered(criteria entities.MatchCriteria) *goqu.SelectDataset {
	return whereAll(a.db.From(providersTable),
		overlaps("issues", criteria.Issues),
		overlaps("age_groups", criteria.AgeGroups),
		overlaps("service_formats", criteria.ServiceFormats),
		overlaps("payment_types", criteria.PaymentTypes),
		overlapsFold("insurance_providers", criteria.InsuranceProviders),
		overlaps("languages", criteria.Languages),
		memberOf("provider_type", criteria.ProviderTypes),
		memberOf("availability_status", criteria.AvailabilityStatus),
		memberOf("gender", criteria.Gender),
		zipPrefix(criteria),
		fullText(criteria.Query),
	)
}

func providerOrder(criteria entities.MatchCriteria) []exp.OrderedExpression {
	var order []exp.OrderedExpression
	switch criteria.SortBy {
	case entities.SortName:
		order = []exp.OrderedExpression{directional("last_name", criteria.SortOrder)}
	case entities.SortAvailability:
		order = []exp.OrderedExpression{waitWeeksOrder()}
	default:
		if criteria.Urgent {
			order = []exp.OrderedExpression{availabilityRankOrder(), waitWeeksOrder()}
		} else {
			order = []exp.OrderedExpression{
				goqu.C("is_featured").Desc(),
				goqu.C("is_verified").Desc(),
				waitWeeksOrder(),
			}
		}
	}
	return append(order, goqu.C("id").Asc())
}

// Match returns one page of matching active providers and the total match count
func (a *ProviderAdapter) Match(ctx context.Context, criteria entities.MatchCriteria) ([]*entities.Provider, int, error) {
	var providers []*entities.Provider
	total, err := a.paginate(ctx, a.filtered(criteria), providerColumns, providerOrder(criteria), criteria, &providers, providersTable)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to match providers", err)
	}

	for _, p := range providers {
		if err := p.Validate(); err != nil {
			return nil, 0, apperrors.NewInternalError("invalid provider row", err)
		}
	}
	if providers == nil {
		providers = []*entities.Provider{}
	}
	return providers, total, nil
}

// GetByID retrieves an active provider by ID
func (a *ProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}

	query, args, err := a.db.From(providersTable).
		Select(providerColumns...).
		Where(goqu.C("id").Eq(id), goqu.C("is_active").IsTrue()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	provider := &entities.Provider{}
	err = a.client.X().GetContext(ctx, provider, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}
	if err := provider.Validate(); err != nil {
		return nil, apperrors.NewInternalError("invalid provider row", err)
	}

	return provider, nil
}
