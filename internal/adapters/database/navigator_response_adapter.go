package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

const navigatorResponsesTable = "navigator_responses"

var navigatorResponseColumns = []interface{}{
	"id", "primary_concern", "help_for", "urgency", "service_format",
	"payment_type", "insurance_provider", "zip_code", "gender_preference",
	"language_preference", "open_to_community_programs", "results_viewed",
	"results_count", "created_at", "updated_at",
}

// NavigatorResponseAdapter implements the NavigatorResponseRepository interface
type NavigatorResponseAdapter struct {
	baseAdapter
	now func() time.Time
}

// NewNavigatorResponseAdapter creates a new navigator response adapter
func NewNavigatorResponseAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.NavigatorResponseRepository {
	return &NavigatorResponseAdapter{
		baseAdapter: newBaseAdapter(client, metrics),
		now:         time.Now,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Create stores a new navigator response
func (a *NavigatorResponseAdapter) Create(ctx context.Context, response *entities.NavigatorResponse) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	now := a.now().UTC()
	response.CreatedAt = now
	response.UpdatedAt = now

	record := goqu.Record{
		"id":                         response.ID,
		"primary_concern":            response.PrimaryConcern,
		"help_for":                   response.HelpFor,
		"urgency":                    response.Urgency,
		"service_format":             response.ServiceFormat,
		"payment_type":               response.PaymentType,
		"insurance_provider":         nullString(response.InsuranceProvider),
		"zip_code":                   response.ZipCode,
		"gender_preference":          nullString(response.GenderPreference),
		"language_preference":        nullString(response.LanguagePreference),
		"open_to_community_programs": response.OpenToCommunityPrograms,
		"results_viewed":             false,
		"results_count":              0,
		"created_at":                 response.CreatedAt,
		"updated_at":                 response.UpdatedAt,
	}

	query, args, err := a.db.Insert(navigatorResponsesTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	start := time.Now()
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create navigator response", err)
	}
	observability.RecordDBMetric(ctx, a.metrics, "navigator_responses.insert", time.Since(start))

	return nil
}

// GetByID retrieves a navigator response by ID
func (a *NavigatorResponseAdapter) GetByID(ctx context.Context, id string) (*entities.NavigatorResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("navigator response with id %s not found", id))
	}

	query, args, err := a.db.From(navigatorResponsesTable).
		Select(navigatorResponseColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	response := &entities.NavigatorResponse{}
	err = a.client.X().GetContext(ctx, response, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("navigator response with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get navigator response", err)
	}

	return response, nil
}

// MarkResultsViewed sets results_viewed and results_count on a response
func (a *NavigatorResponseAdapter) MarkResultsViewed(ctx context.Context, id string, resultsCount int) error {
	query, args, err := a.db.Update(navigatorResponsesTable).
		Set(goqu.Record{
			"results_viewed": true,
			"results_count":  resultsCount,
			"updated_at":     a.now().UTC(),
		}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to mark results viewed", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("navigator response with id %s not found", id))
	}

	return nil
}
