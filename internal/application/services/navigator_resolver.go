package services

import (
	"context"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// NavigatorResolver loads the optional questionnaire snapshot a results
// request refers to.
type NavigatorResolver struct {
	repo repositories.NavigatorResponseRepository
}

// NewNavigatorResolver creates a new resolver
func NewNavigatorResolver(repo repositories.NavigatorResponseRepository) *NavigatorResolver {
	return &NavigatorResolver{repo: repo}
}

// Resolve returns the snapshot for responseID, or nil when no id was given or
// the id matches nothing. Only storage failures are errors.
func (r *NavigatorResolver) Resolve(ctx context.Context, responseID string) (*entities.NavigatorResponse, error) {
	if responseID == "" {
		return nil, nil
	}

	response, err := r.repo.GetByID(ctx, responseID)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to load navigator response", err)
	}
	return response, nil
}
