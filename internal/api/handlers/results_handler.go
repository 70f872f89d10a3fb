package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mhbaltimore/directory/internal/domain/entities"
)

// ResultsFinder runs the matching pipeline
type ResultsFinder interface {
	GetResults(ctx context.Context, params url.Values) (*entities.ResultsResponse, error)
}

// ResultsHandler handles the matching endpoint
type ResultsHandler struct {
	results ResultsFinder
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(results ResultsFinder) *ResultsHandler {
	return &ResultsHandler{results: results}
}

// GetResults handles GET /api/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	resp, err := h.results.GetResults(r.Context(), r.URL.Query())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, resp)
}
