package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// vocabularies maps each custom validation tag to its closed value set
var vocabularies = map[string][]string{
	"issue":               entities.Issues,
	"age_group":           entities.AgeGroups,
	"provider_type":       entities.ProviderTypes,
	"organization_type":   entities.OrganizationTypes,
	"service_format":      entities.ServiceFormats,
	"payment_type":        entities.PaymentTypes,
	"availability_status": entities.AvailabilityStatuses,
	"primary_concern":     entities.PrimaryConcerns,
	"help_for":            entities.HelpForOptions,
	"urgency":             entities.UrgencyLevels,
	"navigator_format":    entities.NavigatorFormats,
	"gender_preference":   entities.GenderPreferences,
}

// newValidator returns a validator that knows the directory vocabularies and
// reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, values := range vocabularies {
		// RegisterValidation only fails on an empty tag or a nil func
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return entities.Contains(values, fl.Field().String())
		})
	}
	return v
}

// fieldErrors converts a validator failure into per-field details
func fieldErrors(err error) []apperrors.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	if values, ok := vocabularies[fe.Tag()]; ok {
		return fmt.Sprintf("%q is not one of: %s", fe.Value(), strings.Join(values, ", "))
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
