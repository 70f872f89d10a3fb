package database

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

func baseCriteria() entities.MatchCriteria {
	return entities.MatchCriteria{
		IncludeProviders:     true,
		IncludeOrganizations: true,
		SortBy:               entities.SortRelevance,
		SortOrder:            entities.SortAsc,
		Page:                 1,
		Limit:                20,
	}
}

func providerPageSQL(t *testing.T, criteria entities.MatchCriteria) string {
	t.Helper()
	client, _ := newMockClient(t)
	a := NewProviderAdapter(client, nil).(*ProviderAdapter)
	query, _, err := a.filtered(criteria).
		Select(providerColumns...).
		Order(providerOrder(criteria)...).
		Limit(uint(criteria.Limit)).
		Offset(uint(criteria.Offset())).
		ToSQL()
	require.NoError(t, err)
	return query
}

func TestProviderQuery_NavigatorDerivedCriteria(t *testing.T) {
	criteria := baseCriteria()
	criteria.Issues = entities.OneOf("anxiety")
	criteria.PaymentTypes = entities.OneOf("medicaid")
	criteria.ZipCode = "21201"

	query := providerPageSQL(t, criteria)

	assert.Contains(t, query, `FROM "providers"`)
	assert.Contains(t, query, `"is_active" IS TRUE`)
	assert.Contains(t, query, `issues && '{"anxiety"}'`)
	assert.Contains(t, query, `payment_types && '{"medicaid"}'`)
	assert.Contains(t, query, `"zip_code" LIKE '212%'`)
	assert.NotContains(t, query, "age_groups &&")
	assert.NotContains(t, query, "languages &&")
	assert.NotContains(t, query, `"gender"`)
	assert.NotContains(t, query, "search_vector")
	assert.Contains(t, query, "LIMIT 20")
	assert.NotContains(t, query, "OFFSET")
}

func TestProviderQuery_UnconstrainedOnlyFiltersActive(t *testing.T) {
	query := providerPageSQL(t, baseCriteria())

	assert.Contains(t, query, `"is_active" IS TRUE`)
	assert.NotContains(t, query, "&&")
	assert.NotContains(t, query, "LIKE")
	assert.NotContains(t, query, " IN ")
}

func TestProviderQuery_CategoricalAndGenderPredicates(t *testing.T) {
	criteria := baseCriteria()
	criteria.ProviderTypes = entities.OneOf("lcsw", "psychologist")
	criteria.AvailabilityStatus = entities.OneOf(entities.AvailabilityAccepting)
	criteria.Gender = entities.OneOf("female")
	criteria.Languages = entities.OneOf("spanish")
	criteria.InsuranceProviders = entities.OneOf("carefirst")
	criteria.Query = "panic attacks"

	query := providerPageSQL(t, criteria)

	assert.Contains(t, query, `"provider_type" IN ('lcsw', 'psychologist')`)
	assert.Contains(t, query, `"availability_status" = 'accepting_new_clients'`)
	assert.Contains(t, query, `"gender" = 'female'`)
	assert.Contains(t, query, `languages && '{"spanish"}'`)
	assert.Contains(t, query, `EXISTS (SELECT 1 FROM unnest(insurance_providers) AS v WHERE lower(v) = ANY('{"carefirst"}'))`)
	assert.Contains(t, query, `search_vector @@ plainto_tsquery('english', 'panic attacks')`)
}

func TestProviderQuery_Pagination(t *testing.T) {
	criteria := baseCriteria()
	criteria.Page = 3

	query := providerPageSQL(t, criteria)

	assert.Contains(t, query, "LIMIT 20 OFFSET 40")
}

func TestProviderQuery_Ordering(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *entities.MatchCriteria)
		expected string
	}{
		{
			name:     "relevance default",
			mutate:   func(c *entities.MatchCriteria) {},
			expected: `ORDER BY "is_featured" DESC, "is_verified" DESC, "typical_wait_weeks" ASC NULLS LAST, "id" ASC`,
		},
		{
			name:   "relevance urgent ranks availability then wait weeks",
			mutate: func(c *entities.MatchCriteria) { c.Urgent = true },
			expected: `ORDER BY CASE availability_status WHEN 'accepting_new_clients' THEN 0 ` +
				`WHEN 'limited_availability' THEN 1 WHEN 'not_accepting' THEN 2 WHEN 'waitlist' THEN 3 ELSE 4 END ASC, ` +
				`"typical_wait_weeks" ASC NULLS LAST, "id" ASC`,
		},
		{
			name:     "name ascending",
			mutate:   func(c *entities.MatchCriteria) { c.SortBy = entities.SortName },
			expected: `ORDER BY "last_name" ASC, "id" ASC`,
		},
		{
			name: "name descending",
			mutate: func(c *entities.MatchCriteria) {
				c.SortBy = entities.SortName
				c.SortOrder = entities.SortDesc
			},
			expected: `ORDER BY "last_name" DESC, "id" ASC`,
		},
		{
			name: "availability ignores urgency and sort order",
			mutate: func(c *entities.MatchCriteria) {
				c.SortBy = entities.SortAvailability
				c.SortOrder = entities.SortDesc
				c.Urgent = true
			},
			expected: `ORDER BY "typical_wait_weeks" ASC NULLS LAST, "id" ASC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := baseCriteria()
			tt.mutate(&criteria)
			assert.Contains(t, providerPageSQL(t, criteria), tt.expected)
		})
	}
}

func TestProviderAdapter_Match(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page rows and total count", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "providers"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT "id", "first_name", .* FROM "providers" WHERE .* ORDER BY`).
			WillReturnRows(sqlmock.NewRows(columnNames(providerColumns)).
				AddRow(providerRow("11111111-1111-1111-1111-111111111111", "Adams", entities.AvailabilityAccepting, int64(2))...).
				AddRow(providerRow("22222222-2222-2222-2222-222222222222", "Baker", entities.AvailabilityAccepting, nil)...))

		providers, total, err := adapter.Match(ctx, baseCriteria())

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, providers, 2)
		assert.Equal(t, "Adams", providers[0].LastName)
		require.NotNil(t, providers[0].TypicalWaitWeeks)
		assert.Equal(t, 2, *providers[0].TypicalWaitWeeks)
		assert.Nil(t, providers[1].TypicalWaitWeeks)
		assert.Equal(t, []string{"anxiety", "depression"}, []string(providers[0].Issues))
		assert.Equal(t, []string{"CareFirst"}, []string(providers[0].InsuranceProviders))
		require.NotNil(t, providers[0].Gender)
		assert.Equal(t, "female", *providers[0].Gender)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero matches is not an error and skips the page query", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "providers"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		providers, total, err := adapter.Match(ctx, baseCriteria())

		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.NotNil(t, providers)
		assert.Empty(t, providers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the last match returns the count only", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "providers"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))

		criteria := baseCriteria()
		criteria.Page = 3
		providers, total, err := adapter.Match(ctx, criteria)

		require.NoError(t, err)
		assert.Equal(t, 40, total)
		assert.Empty(t, providers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page beyond the addressable range returns the count only", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "providers"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		criteria := baseCriteria()
		criteria.Page = math.MaxInt
		providers, total, err := adapter.Match(ctx, criteria)

		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, providers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure surfaces as internal error", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "providers"`).
			WillReturnError(errors.New("connection reset"))

		_, _, err := adapter.Match(ctx, baseCriteria())

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	})

	t.Run("malformed row is rejected at the storage boundary", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "providers"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT "id", "first_name", .* FROM "providers"`).
			WillReturnRows(sqlmock.NewRows(columnNames(providerColumns)).
				AddRow(providerRow("11111111-1111-1111-1111-111111111111", "", entities.AvailabilityAccepting, nil)...))

		_, _, err := adapter.Match(ctx, baseCriteria())

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	})
}

func TestProviderAdapter_GetByID(t *testing.T) {
	ctx := context.Background()
	id := "11111111-1111-1111-1111-111111111111"

	t.Run("returns the active provider", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`SELECT "id", .* FROM "providers" WHERE .*"id" = '` + id + `'.*"is_active" IS TRUE`).
			WillReturnRows(sqlmock.NewRows(columnNames(providerColumns)).
				AddRow(providerRow(id, "Adams", entities.AvailabilityLimited, nil)...))

		provider, err := adapter.GetByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, provider.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		mock.ExpectQuery(`FROM "providers"`).
			WillReturnRows(sqlmock.NewRows(columnNames(providerColumns)))

		_, err := adapter.GetByID(ctx, id)

		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("malformed id is not found without a query", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := NewProviderAdapter(client, nil)

		_, err := adapter.GetByID(ctx, "not-a-uuid")

		assert.True(t, apperrors.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
