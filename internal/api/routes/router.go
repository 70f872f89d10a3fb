package routes

import (
	"net/http"

	"github.com/mhbaltimore/directory/internal/api/handlers"
	"github.com/mhbaltimore/directory/internal/api/middleware"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
)

// Router sets up HTTP routes
type Router struct {
	mux              *http.ServeMux
	healthHandler    *handlers.HealthHandler
	resultsHandler   *handlers.ResultsHandler
	navigatorHandler *handlers.NavigatorHandler
	directoryHandler *handlers.DirectoryHandler
	rateLimiter      *middleware.RateLimiter
	allowedOrigins   []string
	metrics          *observability.Metrics
}

// NewRouter creates a new router. rateLimiter may be nil to disable limiting.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	resultsHandler *handlers.ResultsHandler,
	navigatorHandler *handlers.NavigatorHandler,
	directoryHandler *handlers.DirectoryHandler,
	rateLimiter *middleware.RateLimiter,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		healthHandler:    healthHandler,
		resultsHandler:   resultsHandler,
		navigatorHandler: navigatorHandler,
		directoryHandler: directoryHandler,
		rateLimiter:      rateLimiter,
		allowedOrigins:   allowedOrigins,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	r.mux.HandleFunc("GET /api/results", r.resultsHandler.GetResults)
	r.mux.HandleFunc("POST /api/navigator/responses", r.navigatorHandler.CreateResponse)

	r.mux.HandleFunc("GET /api/providers/{id}", r.directoryHandler.GetProvider)
	r.mux.HandleFunc("GET /api/organizations/{id}", r.directoryHandler.GetOrganization)
	r.mux.HandleFunc("GET /api/directory/suggest", r.directoryHandler.Suggest)

	// Last applied runs first. CORS is outermost so rejected and
	// rate-limited responses still carry CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.Logging(handler)
	handler = middleware.Observability(r.metrics)(handler)
	handler = middleware.Compression(handler)
	if r.rateLimiter != nil {
		handler = r.rateLimiter.Middleware(handler)
	}
	handler = middleware.CORS(r.allowedOrigins)(handler)

	return handler
}
