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

const organizationsTable = "organizations"

var organizationColumns = []interface{}{
	"id", "name", "organization_type", "description", "logo_url", "phone",
	"email", "website", "address", "city", "state", "zip_code",
	"issues_addressed", "age_groups_served", "service_formats", "payment_types",
	"is_free", "accepts_walk_ins", "requires_referral", "is_active",
	"is_verified", "is_featured", "created_at", "updated_at",
}

// OrganizationAdapter implements the OrganizationRepository interface
type OrganizationAdapter struct {
	baseAdapter
}

// NewOrganizationAdapter creates a new organization adapter
func NewOrganizationAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.OrganizationRepository {
	return &OrganizationAdapter{baseAdapter: newBaseAdapter(client, metrics)}
}

// filtered applies the organization predicates of criteria. Gender,
// insurance, languages and availability status describe individual
// practitioners and do not apply here.
func (a *OrganizationAdapter) filtered(criteria entities.MatchCriteria) *goqu.SelectDataset {
	return whereAll(a.db.From(organizationsTable),
		overlaps("issues_addressed", criteria.Issues),
		overlaps("age_groups_served", criteria.AgeGroups),
		overlaps("service_formats", criteria.ServiceFormats),
		overlaps("payment_types", criteria.PaymentTypes),
		memberOf("organization_type", criteria.OrganizationTypes),
		zipPrefix(criteria),
		fullText(criteria.Query),
	)
}

func organizationOrder(criteria entities.MatchCriteria) []exp.OrderedExpression {
	if criteria.SortBy == entities.SortName {
		return []exp.OrderedExpression{directional("name", criteria.SortOrder), goqu.C("id").Asc()}
	}
	return []exp.OrderedExpression{
		goqu.C("is_featured").Desc(),
		goqu.C("is_verified").Desc(),
		goqu.C("name").Asc(),
		goqu.C("id").Asc(),
	}
}

// Match returns one page of matching active organizations and the total match count
func (a *OrganizationAdapter) Match(ctx context.Context, criteria entities.MatchCriteria) ([]*entities.Organization, int, error) {
	var orgs []*entities.Organization
	total, err := a.paginate(ctx, a.filtered(criteria), organizationColumns, organizationOrder(criteria), criteria, &orgs, organizationsTable)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to match organizations", err)
	}

	for _, o := range orgs {
		if err := o.Validate(); err != nil {
			return nil, 0, apperrors.NewInternalError("invalid organization row", err)
		}
	}
	if orgs == nil {
		orgs = []*entities.Organization{}
	}
	return orgs, total, nil
}

// GetByID retrieves an active organization by ID
func (a *OrganizationAdapter) GetByID(ctx context.Context, id string) (*entities.Organization, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("organization with id %s not found", id))
	}

	query, args, err := a.db.From(organizationsTable).
		Select(organizationColumns...).
		Where(goqu.C("id").Eq(id), goqu.C("is_active").IsTrue()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	org := &entities.Organization{}
	err = a.client.X().GetContext(ctx, org, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("organization with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get organization", err)
	}
	if err := org.Validate(); err != nil {
		return nil, apperrors.NewInternalError("invalid organization row", err)
	}

	return org, nil
}
