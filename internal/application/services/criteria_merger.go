package services

import (
	"strings"

	"github.com/mhbaltimore/directory/internal/domain/entities"
)

// helpForAgeGroups maps who help is for onto the age groups served.
// someone_else says nothing about age and is absent on purpose.
var helpForAgeGroups = map[string][]string{
	entities.HelpForMyself: {entities.AgeGroupAdults},
	entities.HelpForChild:  {entities.AgeGroupChildren},
	entities.HelpForTeen:   {entities.AgeGroupAdolescents},
	entities.HelpForCouple: {entities.AgeGroupAdults},
	entities.HelpForFamily: {entities.AgeGroupChildren, entities.AgeGroupAdolescents, entities.AgeGroupAdults},
}

// navigatorFormatTags expands a navigator format onto storage format tags
var navigatorFormatTags = map[string][]string{
	entities.NavigatorFormatInPerson: {entities.FormatInPerson, entities.FormatHybrid},
	entities.NavigatorFormatOnline:   {entities.FormatTelehealth, entities.FormatHybrid},
	entities.NavigatorFormatEither:   {entities.FormatInPerson, entities.FormatTelehealth, entities.FormatHybrid},
}

// pick applies the precedence rule for one dimension: explicit values win,
// then the navigator derivation, else unconstrained.
func pick(explicit []string, nav *entities.NavigatorResponse, derive func(*entities.NavigatorResponse) entities.Constraint) entities.Constraint {
	if len(explicit) > 0 {
		return entities.OneOf(explicit...)
	}
	if nav == nil {
		return entities.Unconstrained()
	}
	return derive(nav)
}

// foldCase lowercases free-text values so explicit filters and navigator
// answers compare the same way.
func foldCase(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func deriveIssues(nav *entities.NavigatorResponse) entities.Constraint {
	if nav.PrimaryConcern == entities.ConcernNotSure {
		return entities.Unconstrained()
	}
	return entities.OneOf(nav.PrimaryConcern)
}

func deriveAgeGroups(nav *entities.NavigatorResponse) entities.Constraint {
	return entities.OneOf(helpForAgeGroups[nav.HelpFor]...)
}

func deriveServiceFormats(nav *entities.NavigatorResponse) entities.Constraint {
	return entities.OneOf(navigatorFormatTags[nav.ServiceFormat]...)
}

func derivePaymentTypes(nav *entities.NavigatorResponse) entities.Constraint {
	return entities.OneOf(nav.PaymentType)
}

func deriveInsurance(nav *entities.NavigatorResponse) entities.Constraint {
	if nav.InsuranceProvider == nil {
		return entities.Unconstrained()
	}
	return entities.OneOf(strings.ToLower(strings.TrimSpace(*nav.InsuranceProvider)))
}

func deriveGender(nav *entities.NavigatorResponse) entities.Constraint {
	if nav == nil || nav.GenderPreference == nil || *nav.GenderPreference == entities.GenderNoPreference {
		return entities.Unconstrained()
	}
	return entities.OneOf(*nav.GenderPreference)
}

func deriveLanguages(nav *entities.NavigatorResponse) entities.Constraint {
	if nav.LanguagePreference == nil {
		return entities.Unconstrained()
	}
	lang := strings.ToLower(strings.TrimSpace(*nav.LanguagePreference))
	if lang == entities.LanguageDefault || lang == entities.LanguageNoPreference {
		return entities.Unconstrained()
	}
	return entities.OneOf(lang)
}

func noDerivation(*entities.NavigatorResponse) entities.Constraint {
	return entities.Unconstrained()
}

// MergeCriteria resolves every filterable dimension from the explicit filter
// and the optional navigator snapshot.
func MergeCriteria(filter entities.ResultsFilter, nav *entities.NavigatorResponse) entities.MatchCriteria {
	criteria := entities.MatchCriteria{
		ResponseID:         filter.ResponseID,
		Issues:             pick(filter.Issues, nav, deriveIssues),
		AgeGroups:          pick(filter.AgeGroups, nav, deriveAgeGroups),
		ProviderTypes:      pick(filter.ProviderTypes, nav, noDerivation),
		OrganizationTypes:  pick(filter.OrganizationTypes, nav, noDerivation),
		ServiceFormats:     pick(filter.ServiceFormats, nav, deriveServiceFormats),
		PaymentTypes:       pick(filter.PaymentTypes, nav, derivePaymentTypes),
		InsuranceProviders: pick(foldCase(filter.InsuranceProviders), nav, deriveInsurance),
		Languages:          pick(foldCase(filter.Languages), nav, deriveLanguages),
		AvailabilityStatus: pick(filter.AvailabilityStatus, nav, noDerivation),
		Gender:             deriveGender(nav),
		ZipCode:            filter.ZipCode,
		Query:              filter.Query,
		SortBy:             filter.SortBy,
		SortOrder:          filter.SortOrder,
		Urgent:             nav.IsUrgent(),
		Page:               filter.Page,
		Limit:              filter.Limit,
	}

	if criteria.ZipCode == "" && nav != nil {
		criteria.ZipCode = nav.ZipCode
	}
	if criteria.SortBy == "" {
		criteria.SortBy = entities.SortRelevance
	}
	if criteria.SortOrder == "" {
		criteria.SortOrder = entities.SortAsc
	}

	criteria.IncludeProviders = true
	if filter.IncludeProviders != nil {
		criteria.IncludeProviders = *filter.IncludeProviders
	}
	criteria.IncludeOrganizations = true
	switch {
	case filter.IncludeOrganizations != nil:
		criteria.IncludeOrganizations = *filter.IncludeOrganizations
	case nav != nil:
		criteria.IncludeOrganizations = nav.OpenToCommunityPrograms
	}

	return criteria
}
