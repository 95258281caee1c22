package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/summit/internal/adapters/catalog"
	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/types"
)

// CatalogDependencies defines the catalog reads used by the handler.
type CatalogDependencies interface {
	Days(ctx context.Context) ([]types.DaySummary, error)
	Day(ctx context.Context, id string) (model.Day, error)
	Speakers(ctx context.Context) ([]catalog.Speaker, error)
	Pavilions(ctx context.Context) ([]catalog.Pavilion, error)
}

type dayResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Theme    string          `json:"theme"`
	Sessions []model.Session `json:"sessions"`
}

// CatalogHandler serves the read-only event catalog.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleListDays handles GET /v1/catalog/days requests.
func (h *CatalogHandler) HandleListDays(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_days"
	days, err := h.deps.Days(r.Context())
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// HandleGetDay handles GET /v1/catalog/days/{day} requests.
func (h *CatalogHandler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_day"
	day, err := h.deps.Day(r.Context(), chi.URLParam(r, "day"))
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	sessions := day.Sessions
	if sessions == nil {
		sessions = []model.Session{}
	}
	writeJSON(w, http.StatusOK, dayResponse{ID: day.ID, Name: day.Name, Theme: day.Theme, Sessions: sessions})
}

// HandleSpeakers handles GET /v1/speakers requests.
func (h *CatalogHandler) HandleSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := h.deps.Speakers(r.Context())
	if err != nil {
		writeFailure(w, r, Wrap("api.speakers", err))
		return
	}
	writeJSON(w, http.StatusOK, speakers)
}

// HandleExpo handles GET /v1/expo requests.
func (h *CatalogHandler) HandleExpo(w http.ResponseWriter, r *http.Request) {
	pavilions, err := h.deps.Pavilions(r.Context())
	if err != nil {
		writeFailure(w, r, Wrap("api.expo", err))
		return
	}
	writeJSON(w, http.StatusOK, pavilions)
}
