package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/summit/internal/adapters/repository"
	service "github.com/okian/summit/internal/app"
	"github.com/okian/summit/internal/domain/profile"
)

// IdempotencyKeyHeader makes a retried share return the first one.
const IdempotencyKeyHeader = "Idempotency-Key"

// CommunityDependencies defines the community board operations.
type CommunityDependencies interface {
	Share(ctx context.Context, req service.ShareRequest) (repository.Share, bool, error)
	Community(ctx context.Context, limit int, proficiency string) ([]repository.Share, error)
	SharedItinerary(ctx context.Context, id string) (repository.Share, error)
}

type shareRequest struct {
	Profile profile.Request `json:"profile"`
	Name    string          `json:"name,omitempty"`
	Bio     string          `json:"bio,omitempty"`
}

func (s shareRequest) validate() error {
	v := profile.Validator()
	if err := v.Var(s.Name, "max=120"); err != nil {
		return errors.New("name exceeds maximum 120")
	}
	if err := v.Var(s.Bio, "max=500"); err != nil {
		return errors.New("bio exceeds maximum 500")
	}
	return nil
}

type shareResponse struct {
	repository.Share

	Duplicate bool `json:"duplicate"`
}

type communityResponse struct {
	Entries []repository.Share `json:"entries"`
	Count   int                `json:"count"`
}

// CommunityHandler publishes and lists shared itineraries.
type CommunityHandler struct {
	deps CommunityDependencies
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(deps CommunityDependencies) *CommunityHandler {
	return &CommunityHandler{deps: deps}
}

// HandleShare handles POST /v1/community requests.
func (h *CommunityHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	const op = "api.share"
	var req shareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := req.Profile.Profile()
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}

	share, duplicate, err := h.deps.Share(r.Context(), service.ShareRequest{
		Profile:        p,
		Name:           req.Name,
		Bio:            req.Bio,
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	status := http.StatusCreated
	if duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, shareResponse{Share: share, Duplicate: duplicate})
}

// HandleList handles GET /v1/community?limit=N&proficiency=P requests.
func (h *CommunityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.community"
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		limit = n
	}
	entries, err := h.deps.Community(r.Context(), limit, q.Get("proficiency"))
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	if entries == nil {
		entries = []repository.Share{}
	}
	writeJSON(w, http.StatusOK, communityResponse{Entries: entries, Count: len(entries)})
}

// HandleGet handles GET /v1/community/{id} requests.
func (h *CommunityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.shared_itinerary"
	share, err := h.deps.SharedItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, share)
}
