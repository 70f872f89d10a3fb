package entities

import "time"

// NavigatorResponse is one submitted questionnaire answer set.
type NavigatorResponse struct {
	ID                      string    `json:"id" db:"id"`
	PrimaryConcern          string    `json:"primary_concern" db:"primary_concern"`
	HelpFor                 string    `json:"help_for" db:"help_for"`
	Urgency                 string    `json:"urgency" db:"urgency"`
	ServiceFormat           string    `json:"service_format" db:"service_format"`
	PaymentType             string    `json:"payment_type" db:"payment_type"`
	InsuranceProvider       *string   `json:"insurance_provider,omitempty" db:"insurance_provider"`
	ZipCode                 string    `json:"zip_code" db:"zip_code"`
	GenderPreference        *string   `json:"gender_preference,omitempty" db:"gender_preference"`
	LanguagePreference      *string   `json:"language_preference,omitempty" db:"language_preference"`
	OpenToCommunityPrograms bool      `json:"open_to_community_programs" db:"open_to_community_programs"`
	ResultsViewed           bool      `json:"results_viewed" db:"results_viewed"`
	ResultsCount            int       `json:"results_count" db:"results_count"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" db:"updated_at"`
}

// IsUrgent reports whether the user asked for immediate help.
func (r *NavigatorResponse) IsUrgent() bool {
	return r != nil && r.Urgency == UrgencyImmediate
}

// NavigatorSubmission is the questionnaire payload accepted from clients.
type NavigatorSubmission struct {
	PrimaryConcern          string `json:"primary_concern" validate:"required,primary_concern"`
	HelpFor                 string `json:"help_for" validate:"required,help_for"`
	Urgency                 string `json:"urgency" validate:"required,urgency"`
	ServiceFormat           string `json:"service_format" validate:"required,navigator_format"`
	PaymentType             string `json:"payment_type" validate:"required,payment_type"`
	InsuranceProvider       string `json:"insurance_provider" validate:"omitempty,max=100"`
	ZipCode                 string `json:"zip_code" validate:"required,len=5,numeric"`
	GenderPreference        string `json:"gender_preference" validate:"omitempty,gender_preference"`
	LanguagePreference      string `json:"language_preference" validate:"omitempty,max=50"`
	OpenToCommunityPrograms bool   `json:"open_to_community_programs"`
}
