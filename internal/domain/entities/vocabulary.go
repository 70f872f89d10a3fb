package entities

// Closed vocabularies shared by the filter schema, the navigator payload
// schema and the storage columns.

// Issues a provider treats or an organization addresses
var Issues = []string{
	"anxiety", "depression", "trauma", "grief", "relationships",
	"substance_use", "eating_disorders", "adhd", "bipolar", "ocd",
	"psychosis", "stress", "lgbtq", "family_conflict", "other",
}

// Age groups served
const (
	AgeGroupChildren    = "children"
	AgeGroupAdolescents = "adolescents"
	AgeGroupAdults      = "adults"
	AgeGroupSeniors     = "seniors"
)

var AgeGroups = []string{AgeGroupChildren, AgeGroupAdolescents, AgeGroupAdults, AgeGroupSeniors}

var ProviderTypes = []string{
	"psychologist", "psychiatrist", "lcsw", "lcpc", "lmft",
	"counselor", "peer_specialist", "psychiatric_np",
}

var OrganizationTypes = []string{
	"community_center", "clinic", "hospital", "nonprofit",
	"support_group", "crisis_center", "faith_based",
}

// Storage-level service format tags
const (
	FormatInPerson   = "in_person"
	FormatTelehealth = "telehealth"
	FormatHybrid     = "hybrid"
)

var ServiceFormats = []string{FormatInPerson, FormatTelehealth, FormatHybrid}

var PaymentTypes = []string{"insurance", "medicaid", "medicare", "self_pay", "sliding_scale", "free"}

// Provider availability statuses
const (
	AvailabilityAccepting = "accepting_new_clients"
	AvailabilityLimited   = "limited_availability"
	AvailabilityClosed    = "not_accepting"
	AvailabilityWaitlist  = "waitlist"
)

var AvailabilityStatuses = []string{AvailabilityAccepting, AvailabilityLimited, AvailabilityClosed, AvailabilityWaitlist}

// AvailabilityRank orders statuses for urgent matches. The ranks follow the
// lexical order of the status names, which is the order clients have always
// observed; keep them in sync if a status is renamed.
var AvailabilityRank = map[string]int{
	AvailabilityAccepting: 0,
	AvailabilityLimited:   1,
	AvailabilityClosed:    2,
	AvailabilityWaitlist:  3,
}

// AvailabilityRankUnknown sorts statuses missing from AvailabilityRank last.
const AvailabilityRankUnknown = 4

// Navigator answer vocabularies
const (
	ConcernNotSure = "not_sure"

	HelpForMyself      = "myself"
	HelpForChild       = "my_child"
	HelpForTeen        = "my_teen"
	HelpForCouple      = "couple"
	HelpForFamily      = "family"
	HelpForSomeoneElse = "someone_else"

	UrgencyImmediate   = "immediate"
	UrgencyWithinWeeks = "within_weeks"
	UrgencyExploring   = "exploring"

	NavigatorFormatInPerson = "in_person"
	NavigatorFormatOnline   = "online"
	NavigatorFormatEither   = "either"

	GenderNoPreference = "no_preference"

	LanguageNoPreference = "no_preference"
	LanguageDefault      = "english"
)

var PrimaryConcerns = append(append([]string{}, Issues...), ConcernNotSure)

var HelpForOptions = []string{HelpForMyself, HelpForChild, HelpForTeen, HelpForCouple, HelpForFamily, HelpForSomeoneElse}

var UrgencyLevels = []string{UrgencyImmediate, UrgencyWithinWeeks, UrgencyExploring}

var NavigatorFormats = []string{NavigatorFormatInPerson, NavigatorFormatOnline, NavigatorFormatEither}

var GenderPreferences = []string{GenderNoPreference, "female", "male", "non_binary"}

// Sort keys
const (
	SortRelevance    = "relevance"
	SortName         = "name"
	SortAvailability = "availability"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Contains reports whether value is one of values.
func Contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
