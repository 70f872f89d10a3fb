package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

const maxNavigatorBody = 16 << 10

// NavigatorSubmitter stores questionnaire answers
type NavigatorSubmitter interface {
	Submit(ctx context.Context, submission entities.NavigatorSubmission) (*entities.NavigatorResponse, error)
}

// NavigatorHandler handles questionnaire submissions
type NavigatorHandler struct {
	navigator NavigatorSubmitter
}

// NewNavigatorHandler creates a new navigator handler
func NewNavigatorHandler(navigator NavigatorSubmitter) *NavigatorHandler {
	return &NavigatorHandler{navigator: navigator}
}

// CreateResponse handles POST /api/navigator/responses
func (h *NavigatorHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxNavigatorBody)

	var submission entities.NavigatorSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		var tooLarge *http.MaxBytesError
		message := "request body must be a JSON object"
		if errors.As(err, &tooLarge) {
			message = "request body too large"
		}
		respondWithError(w, r, apperrors.NewValidationError(message))
		return
	}

	resp, err := h.navigator.Submit(r.Context(), submission)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithData(w, http.StatusCreated, resp)
}
