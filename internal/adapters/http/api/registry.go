package api

import (
	"net/http"

	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/registry"
)

type registryResponse struct {
	Days          []registry.DayInfo          `json:"days"`
	Roles         []registry.Role             `json:"roles"`
	Interests     []registry.InterestCategory `json:"interests"`
	Goals         []registry.Goal             `json:"goals"`
	Proficiencies []model.Level               `json:"proficiencies"`
}

// RegistryHandler serves the intake vocabularies.
type RegistryHandler struct {
	body registryResponse
}

// NewRegistryHandler creates a new registry handler.
func NewRegistryHandler() *RegistryHandler {
	return &RegistryHandler{body: registryResponse{
		Days:          registry.Days(),
		Roles:         registry.Roles(),
		Interests:     registry.Interests(),
		Goals:         registry.Goals(),
		Proficiencies: []model.Level{model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced},
	}}
}

// HandleGetRegistry handles GET /v1/registry requests.
func (h *RegistryHandler) HandleGetRegistry(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.body)
}
