package entities

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Provider is an individual practitioner listing as stored.
type Provider struct {
	ID                 string         `db:"id"`
	FirstName          string         `db:"first_name"`
	LastName           string         `db:"last_name"`
	Credentials        *string        `db:"credentials"`
	ProviderType       string         `db:"provider_type"`
	Gender             *string        `db:"gender"`
	Bio                *string        `db:"bio"`
	PhotoURL           *string        `db:"photo_url"`
	Phone              *string        `db:"phone"`
	Email              *string        `db:"email"`
	Website            *string        `db:"website"`
	Address            *string        `db:"address"`
	City               string         `db:"city"`
	State              string         `db:"state"`
	ZipCode            string         `db:"zip_code"`
	Issues             pq.StringArray `db:"issues"`
	AgeGroups          pq.StringArray `db:"age_groups"`
	ServiceFormats     pq.StringArray `db:"service_formats"`
	PaymentTypes       pq.StringArray `db:"payment_types"`
	InsuranceProviders pq.StringArray `db:"insurance_providers"`
	Languages          pq.StringArray `db:"languages"`
	AvailabilityStatus string         `db:"availability_status"`
	TypicalWaitWeeks   *int           `db:"typical_wait_weeks"`
	IsActive           bool           `db:"is_active"`
	IsVerified         bool           `db:"is_verified"`
	IsFeatured         bool           `db:"is_featured"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// Validate checks the invariants every stored provider row must satisfy.
func (p *Provider) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("provider row without id")
	}
	if p.LastName == "" {
		return fmt.Errorf("provider %s has no last name", p.ID)
	}
	return nil
}

// FullName joins first and last name.
func (p *Provider) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

// ProviderRating is the review aggregate of one provider.
type ProviderRating struct {
	ProviderID    string  `json:"provider_id" db:"provider_id"`
	ReviewCount   int     `json:"review_count" db:"review_count"`
	AverageRating float64 `json:"average_rating" db:"average_rating"`
}
