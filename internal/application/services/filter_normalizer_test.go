package services_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhbaltimore/directory/internal/application/services"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

func normalize(t *testing.T, raw string) (*services.FilterNormalizer, url.Values) {
	t.Helper()
	params, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return services.NewFilterNormalizer(20, 100), params
}

func TestFilterNormalizer_Defaults(t *testing.T) {
	n, params := normalize(t, "")

	filter, err := n.Normalize(params)

	require.NoError(t, err)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.Limit)
	assert.Nil(t, filter.IncludeProviders)
	assert.Nil(t, filter.IncludeOrganizations)
	assert.Nil(t, filter.Issues)
	assert.Empty(t, filter.ZipCode)
}

func TestFilterNormalizer_SplitsArraysAndDropsBlanks(t *testing.T) {
	n, params := normalize(t, "issues=anxiety,,depression,&age_groups=,&languages=%20spanish%20&insurance_providers=CareFirst,Aetna")

	filter, err := n.Normalize(params)

	require.NoError(t, err)
	assert.Equal(t, []string{"anxiety", "depression"}, filter.Issues)
	assert.Nil(t, filter.AgeGroups, "blank-only list must be absent, not empty")
	assert.Equal(t, []string{"spanish"}, filter.Languages)
	assert.Equal(t, []string{"CareFirst", "Aetna"}, filter.InsuranceProviders)
}

func TestFilterNormalizer_Booleans(t *testing.T) {
	n, params := normalize(t, "include_providers=true&include_organizations=yes")

	filter, err := n.Normalize(params)

	require.NoError(t, err)
	require.NotNil(t, filter.IncludeProviders)
	require.NotNil(t, filter.IncludeOrganizations)
	assert.True(t, *filter.IncludeProviders)
	assert.False(t, *filter.IncludeOrganizations, "anything other than \"true\" is false")
}

func TestFilterNormalizer_Scalars(t *testing.T) {
	n, params := normalize(t, "response_id=abc&zip_code=21224&query=panic&sort_by=name&sort_order=desc&page=3&limit=50&unknown_param=1")

	filter, err := n.Normalize(params)

	require.NoError(t, err)
	assert.Equal(t, "abc", filter.ResponseID)
	assert.Equal(t, "21224", filter.ZipCode)
	assert.Equal(t, "panic", filter.Query)
	assert.Equal(t, "name", filter.SortBy)
	assert.Equal(t, "desc", filter.SortOrder)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.Limit)
}

func TestFilterNormalizer_ReportsEveryViolation(t *testing.T) {
	n, params := normalize(t, "issues=anxiety,hauntings&zip_code=212&page=0&limit=abc&sort_by=distance&availability_status=open")

	_, err := n.Normalize(params)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())

	fields := map[string]bool{}
	for _, d := range appErr.Details {
		fields[d.Field] = true
		assert.NotEmpty(t, d.Message)
	}
	assert.True(t, fields["issues[1]"], "details: %+v", appErr.Details)
	assert.True(t, fields["zip_code"])
	assert.True(t, fields["page"])
	assert.True(t, fields["limit"])
	assert.True(t, fields["sort_by"])
	assert.True(t, fields["availability_status[0]"])
	assert.Len(t, appErr.Details, 6)
}

func TestFilterNormalizer_LimitBounds(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"limit=1", true},
		{"limit=100", true},
		{"limit=101", false},
		{"limit=0", false},
		{"limit=-5", false},
		{"zip_code=2120a", false},
		{"sort_order=up", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, params := normalize(t, tt.raw)
			_, err := n.Normalize(params)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
