// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/vitals/internal/app"
	"github.com/okian/vitals/internal/domain/model"
	"github.com/okian/vitals/internal/domain/types"
	"github.com/okian/vitals/pkg/logger"
)

// BiomarkerDependencies defines the interface for reading classification.
type BiomarkerDependencies interface {
	ClassifyReading(ctx context.Context, r model.Reading) types.Biomarker
	ClassifyPanel(ctx context.Context, readings []model.Reading) (types.Panel, error)
}

// panelRequest is the body of POST /v1/panels/classify.
type panelRequest struct {
	Readings []model.Reading `json:"readings"`
}

// BiomarkerHandler handles single reading and panel requests.
type BiomarkerHandler struct {
	deps BiomarkerDependencies
	log  logger.Logger
}

// NewBiomarkerHandler creates a new biomarker handler.
func NewBiomarkerHandler(deps BiomarkerDependencies, log logger.Logger) *BiomarkerHandler {
	return &BiomarkerHandler{deps: deps, log: log}
}

// HandleClassifyReading handles POST /v1/biomarkers/classify requests.
// Out-of-enum status or trend values are accepted and classified through the
// fallback branches.
func (h *BiomarkerHandler) HandleClassifyReading(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify_reading"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req model.Reading
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn(r.Context(), "invalid reading request", logger.String("request_id", RequestIDFrom(r.Context())), logger.Error(err))
		writeDecodeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ClassifyReading(r.Context(), req))
}

// HandleClassifyPanel handles POST /v1/panels/classify requests.
func (h *BiomarkerHandler) HandleClassifyPanel(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify_panel"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req panelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn(r.Context(), "invalid panel request", logger.String("request_id", RequestIDFrom(r.Context())), logger.Error(err))
		writeDecodeError(w, op, err)
		return
	}
	panel, err := h.deps.ClassifyPanel(r.Context(), req.Readings)
	if err != nil {
		if errors.Is(err, service.ErrPanelTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "panel_too_large", err)
			return
		}
		h.log.Error(r.Context(), "panel classification failed", logger.String("request_id", RequestIDFrom(r.Context())), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, panel)
}
