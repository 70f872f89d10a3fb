package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// DirectoryService serves profiles and name suggestions
type DirectoryService interface {
	GetProviderCard(ctx context.Context, id string) (*entities.ProviderCard, error)
	GetOrganizationCard(ctx context.Context, id string) (*entities.OrganizationCard, error)
	SuggestEnabled() bool
	Suggest(ctx context.Context, query string, limit int) ([]*entities.DirectoryEntry, error)
}

// DirectoryHandler handles profile and suggestion requests
type DirectoryHandler struct {
	directory DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directory DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// GetProvider handles GET /api/providers/{id}
func (h *DirectoryHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	card, err := h.directory.GetProviderCard(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, card)
}

// GetOrganization handles GET /api/organizations/{id}
func (h *DirectoryHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	card, err := h.directory.GetOrganizationCard(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, card)
}

// Suggest handles GET /api/directory/suggest
func (h *DirectoryHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if !h.directory.SuggestEnabled() {
		respondWithError(w, r, apperrors.NewNotFoundError("directory suggestions are not enabled"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, r, apperrors.NewValidationError("invalid suggestion request",
				apperrors.FieldError{Field: "limit", Message: "must be an integer"}))
			return
		}
		limit = n
	}

	entries, err := h.directory.Suggest(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, entries)
}
