// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// PolarityDependencies exposes the active polarity table.
type PolarityDependencies interface {
	LowerIsBetter(ctx context.Context) []string
}

type polarityResponse struct {
	LowerIsBetter []string `json:"lower_is_better"`
}

// PolarityHandler handles polarity table requests.
type PolarityHandler struct {
	deps PolarityDependencies
}

// NewPolarityHandler creates a new polarity handler.
func NewPolarityHandler(deps PolarityDependencies) *PolarityHandler {
	return &PolarityHandler{deps: deps}
}

// HandleGetPolarity handles GET /v1/polarity requests.
func (h *PolarityHandler) HandleGetPolarity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "api.get_polarity", http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, polarityResponse{LowerIsBetter: h.deps.LowerIsBetter(r.Context())})
}
