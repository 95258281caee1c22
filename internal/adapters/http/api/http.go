// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/okian/summit/internal/adapters/catalog"
	"github.com/okian/summit/internal/adapters/repository"
	service "github.com/okian/summit/internal/app"
	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/profile"
	"github.com/okian/summit/internal/domain/types"
	"github.com/okian/summit/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Planning operations.
	Itinerary(ctx context.Context, p model.Profile) (model.Itinerary, error)
	BatchItineraries(ctx context.Context, profiles []model.Profile) ([]model.Itinerary, error)
	ScoreSession(ctx context.Context, session model.Session, p model.Profile) (model.ScoredSession, error)

	// Catalog reads.
	Days(ctx context.Context) ([]types.DaySummary, error)
	Day(ctx context.Context, id string) (model.Day, error)
	Speakers(ctx context.Context) ([]catalog.Speaker, error)
	Pavilions(ctx context.Context) ([]catalog.Pavilion, error)

	// Community board.
	Share(ctx context.Context, req service.ShareRequest) (repository.Share, bool, error)
	Community(ctx context.Context, limit int, proficiency string) ([]repository.Share, error)
	SharedItinerary(ctx context.Context, id string) (repository.Share, error)
}

// Server wires HTTP routes for the planner API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	registryHandler  *RegistryHandler
	catalogHandler   *CatalogHandler
	itineraryHandler *ItineraryHandler
	communityHandler *CommunityHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		registryHandler:  NewRegistryHandler(),
		catalogHandler:   NewCatalogHandler(deps),
		itineraryHandler: NewItineraryHandler(deps),
		communityHandler: NewCommunityHandler(deps),
	}
}

// Routes returns a chi router with the middleware stack and every route.
// extra registers additional routes, such as the API docs, on the same router.
func (s *Server) Routes(extra ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
	s.Register(r)
	for _, register := range extra {
		register(r)
	}
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/registry", MetricsMiddleware(s.registryHandler.HandleGetRegistry, "registry"))

		r.Get("/catalog/days", MetricsMiddleware(s.catalogHandler.HandleListDays, "catalog_days"))
		r.Get("/catalog/days/{day}", MetricsMiddleware(s.catalogHandler.HandleGetDay, "catalog_day"))
		r.Get("/speakers", MetricsMiddleware(s.catalogHandler.HandleSpeakers, "speakers"))
		r.Get("/expo", MetricsMiddleware(s.catalogHandler.HandleExpo, "expo"))

		r.Post("/itinerary", MetricsMiddleware(s.itineraryHandler.HandleItinerary, "itinerary"))
		r.Post("/itinerary/batch", MetricsMiddleware(s.itineraryHandler.HandleBatch, "itinerary_batch"))
		r.Post("/sessions/score", MetricsMiddleware(s.itineraryHandler.HandleScore, "session_score"))

		r.Post("/community", MetricsMiddleware(s.communityHandler.HandleShare, "community_share"))
		r.Get("/community", MetricsMiddleware(s.communityHandler.HandleList, "community_list"))
		r.Get("/community/{id}", MetricsMiddleware(s.communityHandler.HandleGet, "community_get"))
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, types.ErrorResponse{Code: code, Message: msg})
}

// writeFailure maps a service error onto a status and error code. Causes of
// server errors are logged and never sent to the client.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, profile.ErrInvalidProfile),
		errors.Is(err, catalog.ErrInvalidSession),
		errors.Is(err, service.ErrInvalidShare),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalog.ErrDayNotFound),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotStarted),
		errors.Is(err, repository.ErrStoreClosed),
		errors.Is(err, ErrUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		logger.Get().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
