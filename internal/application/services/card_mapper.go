package services

import "github.com/mhbaltimore/directory/internal/domain/entities"

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ToProviderCard maps a provider row and its optional rating to the public card
func ToProviderCard(p *entities.Provider, rating *entities.ProviderRating) *entities.ProviderCard {
	card := &entities.ProviderCard{
		ID:                 p.ID,
		Name:               p.FullName(),
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Credentials:        deref(p.Credentials),
		ProviderType:       p.ProviderType,
		Gender:             deref(p.Gender),
		Bio:                deref(p.Bio),
		PhotoURL:           deref(p.PhotoURL),
		Phone:              deref(p.Phone),
		Email:              deref(p.Email),
		Website:            deref(p.Website),
		Address:            deref(p.Address),
		City:               p.City,
		State:              p.State,
		ZipCode:            p.ZipCode,
		Issues:             nonNil(p.Issues),
		AgeGroups:          nonNil(p.AgeGroups),
		ServiceFormats:     nonNil(p.ServiceFormats),
		PaymentTypes:       nonNil(p.PaymentTypes),
		InsuranceProviders: nonNil(p.InsuranceProviders),
		Languages:          nonNil(p.Languages),
		AvailabilityStatus: p.AvailabilityStatus,
		TypicalWaitWeeks:   p.TypicalWaitWeeks,
		IsVerified:         p.IsVerified,
		IsFeatured:         p.IsFeatured,
	}
	if rating != nil && rating.ReviewCount > 0 {
		card.Rating = &entities.RatingSummary{
			Average: rating.AverageRating,
			Count:   rating.ReviewCount,
		}
	}
	return card
}

// ToOrganizationCard maps an organization row to the public card
func ToOrganizationCard(o *entities.Organization) *entities.OrganizationCard {
	return &entities.OrganizationCard{
		ID:               o.ID,
		Name:             o.Name,
		OrganizationType: o.OrganizationType,
		Description:      deref(o.Description),
		LogoURL:          deref(o.LogoURL),
		Phone:            deref(o.Phone),
		Email:            deref(o.Email),
		Website:          deref(o.Website),
		Address:          deref(o.Address),
		City:             o.City,
		State:            o.State,
		ZipCode:          o.ZipCode,
		IssuesAddressed:  nonNil(o.IssuesAddressed),
		AgeGroupsServed:  nonNil(o.AgeGroupsServed),
		ServiceFormats:   nonNil(o.ServiceFormats),
		PaymentTypes:     nonNil(o.PaymentTypes),
		IsFree:           o.IsFree,
		AcceptsWalkIns:   o.AcceptsWalkIns,
		RequiresReferral: o.RequiresReferral,
		IsVerified:       o.IsVerified,
		IsFeatured:       o.IsFeatured,
	}
}
