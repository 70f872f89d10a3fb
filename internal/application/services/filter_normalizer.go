package services

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// FilterNormalizer turns raw results query parameters into a validated filter
type FilterNormalizer struct {
	validate     *validator.Validate
	defaultLimit int
	maxLimit     int
}

// NewFilterNormalizer creates a normalizer with the given page size bounds
func NewFilterNormalizer(defaultLimit, maxLimit int) *FilterNormalizer {
	return &FilterNormalizer{
		validate:     newValidator(),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// splitList splits a comma-separated value, trimming and dropping blanks.
// Nothing left means absent.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFlag(params url.Values, key string) *bool {
	if !params.Has(key) {
		return nil
	}
	v := params.Get(key) == "true"
	return &v
}

// Normalize parses and validates params. Every violation is reported in one
// VALIDATION_ERROR; unknown parameters are ignored.
func (n *FilterNormalizer) Normalize(params url.Values) (entities.ResultsFilter, error) {
	var violations []apperrors.FieldError

	parseInt := func(key string, def int) int {
		raw := strings.TrimSpace(params.Get(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, apperrors.FieldError{Field: key, Message: "must be an integer"})
			return def
		}
		return v
	}

	filter := entities.ResultsFilter{
		ResponseID:           strings.TrimSpace(params.Get("response_id")),
		IncludeProviders:     parseFlag(params, "include_providers"),
		IncludeOrganizations: parseFlag(params, "include_organizations"),
		Issues:               splitList(params.Get("issues")),
		AgeGroups:            splitList(params.Get("age_groups")),
		ProviderTypes:        splitList(params.Get("provider_types")),
		OrganizationTypes:    splitList(params.Get("organization_types")),
		ServiceFormats:       splitList(params.Get("service_formats")),
		PaymentTypes:         splitList(params.Get("payment_types")),
		InsuranceProviders:   splitList(params.Get("insurance_providers")),
		Languages:            splitList(params.Get("languages")),
		AvailabilityStatus:   splitList(params.Get("availability_status")),
		ZipCode:              strings.TrimSpace(params.Get("zip_code")),
		Query:                strings.TrimSpace(params.Get("query")),
		SortBy:               strings.TrimSpace(params.Get("sort_by")),
		SortOrder:            strings.TrimSpace(params.Get("sort_order")),
		Page:                 parseInt("page", 1),
		Limit:                parseInt("limit", n.defaultLimit),
	}

	if err := n.validate.Struct(filter); err != nil {
		violations = append(violations, fieldErrors(err)...)
	}
	if filter.Limit > n.maxLimit {
		violations = append(violations, apperrors.FieldError{
			Field:   "limit",
			Message: "must be at most " + strconv.Itoa(n.maxLimit),
		})
	}

	if len(violations) > 0 {
		return entities.ResultsFilter{}, apperrors.NewValidationError("invalid results filter", violations...)
	}
	return filter, nil
}
