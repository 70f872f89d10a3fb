package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, database := http.StatusOK, "ok"
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status, database = http.StatusServiceUnavailable, "unreachable"
		}
	}
	respondWithJSON(w, status, map[string]string{
		"status":   http.StatusText(status),
		"database": database,
	})
}
