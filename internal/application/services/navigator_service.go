package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// NavigatorService handles questionnaire submissions
type NavigatorService struct {
	repo     repositories.NavigatorResponseRepository
	validate *validator.Validate
}

// NewNavigatorService creates a new navigator service
func NewNavigatorService(repo repositories.NavigatorResponseRepository) *NavigatorService {
	return &NavigatorService{
		repo:     repo,
		validate: newValidator(),
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Submit validates a questionnaire answer set and stores it as a new response
func (s *NavigatorService) Submit(ctx context.Context, submission entities.NavigatorSubmission) (*entities.NavigatorResponse, error) {
	submission.ZipCode = strings.TrimSpace(submission.ZipCode)
	if err := s.validate.Struct(submission); err != nil {
		return nil, apperrors.NewValidationError("invalid navigator response", fieldErrors(err)...)
	}

	response := &entities.NavigatorResponse{
		PrimaryConcern:          submission.PrimaryConcern,
		HelpFor:                 submission.HelpFor,
		Urgency:                 submission.Urgency,
		ServiceFormat:           submission.ServiceFormat,
		PaymentType:             submission.PaymentType,
		InsuranceProvider:       optional(submission.InsuranceProvider),
		ZipCode:                 submission.ZipCode,
		GenderPreference:        optional(submission.GenderPreference),
		LanguagePreference:      optional(submission.LanguagePreference),
		OpenToCommunityPrograms: submission.OpenToCommunityPrograms,
	}

	if err := s.repo.Create(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}
