package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/summit/internal/adapters/catalog"
	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/profile"
	"github.com/okian/summit/internal/domain/types"
)

// ItineraryDependencies defines the planning operations used by the handler.
type ItineraryDependencies interface {
	Itinerary(ctx context.Context, p model.Profile) (model.Itinerary, error)
	BatchItineraries(ctx context.Context, profiles []model.Profile) ([]model.Itinerary, error)
	ScoreSession(ctx context.Context, session model.Session, p model.Profile) (model.ScoredSession, error)
}

type batchRequest struct {
	Profiles []profile.Request `json:"profiles"`
}

type batchResponse struct {
	Itineraries []types.ItineraryResponse `json:"itineraries"`
}

type scoreRequest struct {
	Session model.Session   `json:"session"`
	Profile profile.Request `json:"profile"`
}

// ItineraryHandler builds itineraries and scores sessions.
type ItineraryHandler struct {
	deps ItineraryDependencies
}

// NewItineraryHandler creates a new itinerary handler.
func NewItineraryHandler(deps ItineraryDependencies) *ItineraryHandler {
	return &ItineraryHandler{deps: deps}
}

// HandleItinerary handles POST /v1/itinerary requests.
func (h *ItineraryHandler) HandleItinerary(w http.ResponseWriter, r *http.Request) {
	const op = "api.itinerary"
	var req profile.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := req.Profile()
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	it, err := h.deps.Itinerary(r.Context(), p)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.NewItineraryResponse(p.Name, it))
}

// HandleBatch handles POST /v1/itinerary/batch requests.
func (h *ItineraryHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.itinerary_batch"
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Profiles) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("profiles must not be empty")))
		return
	}

	profiles := make([]model.Profile, 0, len(req.Profiles))
	for i, pr := range req.Profiles {
		p, err := pr.Profile()
		if err != nil {
			writeFailure(w, r, Wrap(op, fmt.Errorf("profile %d: %w", i, err)))
			return
		}
		profiles = append(profiles, p)
	}

	its, err := h.deps.BatchItineraries(r.Context(), profiles)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	resp := batchResponse{Itineraries: make([]types.ItineraryResponse, 0, len(its))}
	for i, it := range its {
		resp.Itineraries = append(resp.Itineraries, types.NewItineraryResponse(profiles[i].Name, it))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleScore handles POST /v1/sessions/score requests.
func (h *ItineraryHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_session"
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	session, err := catalog.NormalizeSession(req.Session)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := req.Profile.Profile()
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	scored, err := h.deps.ScoreSession(r.Context(), session, p)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.NewSessionView(scored))
}
