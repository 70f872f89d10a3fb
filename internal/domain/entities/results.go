package entities

import "math"

// ResultsFilter is the typed form of the results query string. Array fields
// are nil when absent and never empty when present.
type ResultsFilter struct {
	ResponseID           string   `json:"response_id,omitempty"`
	IncludeProviders     *bool    `json:"include_providers,omitempty"`
	IncludeOrganizations *bool    `json:"include_organizations,omitempty"`
	Issues               []string `json:"issues,omitempty" validate:"omitempty,dive,issue"`
	AgeGroups            []string `json:"age_groups,omitempty" validate:"omitempty,dive,age_group"`
	ProviderTypes        []string `json:"provider_types,omitempty" validate:"omitempty,dive,provider_type"`
	OrganizationTypes    []string `json:"organization_types,omitempty" validate:"omitempty,dive,organization_type"`
	ServiceFormats       []string `json:"service_formats,omitempty" validate:"omitempty,dive,service_format"`
	PaymentTypes         []string `json:"payment_types,omitempty" validate:"omitempty,dive,payment_type"`
	InsuranceProviders   []string `json:"insurance_providers,omitempty" validate:"omitempty,dive,max=100"`
	Languages            []string `json:"languages,omitempty" validate:"omitempty,dive,max=50"`
	AvailabilityStatus   []string `json:"availability_status,omitempty" validate:"omitempty,dive,availability_status"`
	ZipCode              string   `json:"zip_code,omitempty" validate:"omitempty,len=5,numeric"`
	Query                string   `json:"query,omitempty" validate:"omitempty,max=200"`
	SortBy               string   `json:"sort_by,omitempty" validate:"omitempty,oneof=relevance name availability"`
	SortOrder            string   `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
	Page                 int      `json:"page" validate:"min=1"`
	Limit                int      `json:"limit" validate:"min=1"`
}

// MatchCriteria is the merged, effective filter set both entity queries run
// against. It is also echoed to clients as filters_applied.
type MatchCriteria struct {
	ResponseID           string     `json:"response_id,omitempty"`
	IncludeProviders     bool       `json:"include_providers"`
	IncludeOrganizations bool       `json:"include_organizations"`
	Issues               Constraint `json:"issues"`
	AgeGroups            Constraint `json:"age_groups"`
	ProviderTypes        Constraint `json:"provider_types"`
	OrganizationTypes    Constraint `json:"organization_types"`
	ServiceFormats       Constraint `json:"service_formats"`
	PaymentTypes         Constraint `json:"payment_types"`
	InsuranceProviders   Constraint `json:"insurance_providers"`
	Languages            Constraint `json:"languages"`
	AvailabilityStatus   Constraint `json:"availability_status"`
	Gender               Constraint `json:"gender"`
	ZipCode              string     `json:"zip_code,omitempty"`
	Query                string     `json:"query,omitempty"`
	SortBy               string     `json:"sort_by"`
	SortOrder            string     `json:"sort_order"`
	Urgent               bool       `json:"urgent"`
	Page                 int        `json:"page"`
	Limit                int        `json:"limit"`
}

// Offset is the zero-based row offset of the requested page. Pages past the
// addressable range saturate at math.MaxInt.
func (c MatchCriteria) Offset() int {
	if c.Page < 1 || c.Limit < 1 {
		return 0
	}
	if c.Page-1 > math.MaxInt/c.Limit {
		return math.MaxInt
	}
	return (c.Page - 1) * c.Limit
}

// HasMore reports whether total rows extend past the requested page, that
// is total > page*limit, without forming the product.
func (c MatchCriteria) HasMore(total int) bool {
	if total < 1 || c.Limit < 1 {
		return false
	}
	page := c.Page
	if page < 1 {
		page = 1
	}
	return page <= (total-1)/c.Limit
}

// ZipPrefix is the locality key entities are matched on.
func (c MatchCriteria) ZipPrefix() string {
	if len(c.ZipCode) <= 3 {
		return c.ZipCode
	}
	return c.ZipCode[:3]
}

// RatingSummary is the review aggregate shown on a provider card.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ProviderCard is the public representation of a provider.
type ProviderCard struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	FirstName          string         `json:"first_name"`
	LastName           string         `json:"last_name"`
	Credentials        string         `json:"credentials,omitempty"`
	ProviderType       string         `json:"provider_type"`
	Gender             string         `json:"gender,omitempty"`
	Bio                string         `json:"bio,omitempty"`
	PhotoURL           string         `json:"photo_url,omitempty"`
	Phone              string         `json:"phone,omitempty"`
	Email              string         `json:"email,omitempty"`
	Website            string         `json:"website,omitempty"`
	Address            string         `json:"address,omitempty"`
	City               string         `json:"city"`
	State              string         `json:"state"`
	ZipCode            string         `json:"zip_code"`
	Issues             []string       `json:"issues"`
	AgeGroups          []string       `json:"age_groups"`
	ServiceFormats     []string       `json:"service_formats"`
	PaymentTypes       []string       `json:"payment_types"`
	InsuranceProviders []string       `json:"insurance_providers"`
	Languages          []string       `json:"languages"`
	AvailabilityStatus string         `json:"availability_status"`
	TypicalWaitWeeks   *int           `json:"typical_wait_weeks,omitempty"`
	IsVerified         bool           `json:"is_verified"`
	IsFeatured         bool           `json:"is_featured"`
	Rating             *RatingSummary `json:"rating,omitempty"`
}

// OrganizationCard is the public representation of an organization.
type OrganizationCard struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	OrganizationType string   `json:"organization_type"`
	Description      string   `json:"description,omitempty"`
	LogoURL          string   `json:"logo_url,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Email            string   `json:"email,omitempty"`
	Website          string   `json:"website,omitempty"`
	Address          string   `json:"address,omitempty"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ZipCode          string   `json:"zip_code"`
	IssuesAddressed  []string `json:"issues_addressed"`
	AgeGroupsServed  []string `json:"age_groups_served"`
	ServiceFormats   []string `json:"service_formats"`
	PaymentTypes     []string `json:"payment_types"`
	IsFree           bool     `json:"is_free"`
	AcceptsWalkIns   bool     `json:"accepts_walk_ins"`
	RequiresReferral bool     `json:"requires_referral"`
	IsVerified       bool     `json:"is_verified"`
	IsFeatured       bool     `json:"is_featured"`
}

// ResultsResponse is the merged, paginated matching result.
type ResultsResponse struct {
	Providers      []*ProviderCard     `json:"providers"`
	Organizations  []*OrganizationCard `json:"organizations"`
	TotalCount     int                 `json:"total_count"`
	Page           int                 `json:"page"`
	Limit          int                 `json:"limit"`
	HasMore        bool                `json:"has_more"`
	FiltersApplied MatchCriteria       `json:"filters_applied"`
}

// Directory entry kinds
const (
	KindProvider     = "provider"
	KindOrganization = "organization"
)

// DirectoryEntry is one searchable name in the suggestion index.
type DirectoryEntry struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Name     string   `json:"name"`
	Subtitle string   `json:"subtitle,omitempty"`
	City     string   `json:"city,omitempty"`
	ZipCode  string   `json:"zip_code,omitempty"`
	Issues   []string `json:"issues,omitempty"`
	Featured bool     `json:"featured"`
}
