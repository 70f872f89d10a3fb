package entities

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Organization is a community or clinical group listing as stored.
type Organization struct {
	ID                 string         `db:"id"`
	Name               string         `db:"name"`
	OrganizationType   string         `db:"organization_type"`
	Description        *string        `db:"description"`
	LogoURL            *string        `db:"logo_url"`
	Phone              *string        `db:"phone"`
	Email              *string        `db:"email"`
	Website            *string        `db:"website"`
	Address            *string        `db:"address"`
	City               string         `db:"city"`
	State              string         `db:"state"`
	ZipCode            string         `db:"zip_code"`
	IssuesAddressed    pq.StringArray `db:"issues_addressed"`
	AgeGroupsServed    pq.StringArray `db:"age_groups_served"`
	ServiceFormats     pq.StringArray `db:"service_formats"`
	PaymentTypes       pq.StringArray `db:"payment_types"`
	IsFree             bool           `db:"is_free"`
	AcceptsWalkIns     bool           `db:"accepts_walk_ins"`
	RequiresReferral   bool           `db:"requires_referral"`
	IsActive           bool           `db:"is_active"`
	IsVerified         bool           `db:"is_verified"`
	IsFeatured         bool           `db:"is_featured"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// Validate checks the invariants every stored organization row must satisfy.
func (o *Organization) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("organization row without id")
	}
	if o.Name == "" {
		return fmt.Errorf("organization %s has no name", o.ID)
	}
	return nil
}
