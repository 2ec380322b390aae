// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/vitals/internal/domain/model"
	"github.com/okian/vitals/internal/domain/types"
	"github.com/okian/vitals/pkg/logger"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	ClassifyScore(ctx context.Context, score float64) types.ScoreBand
	ClassifyReading(ctx context.Context, r model.Reading) types.Biomarker
	ClassifyPanel(ctx context.Context, readings []model.Reading) (types.Panel, error)
	LowerIsBetter(ctx context.Context) []string
}

// Server wires HTTP routes for the classification API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	scoreHandler     *ScoreHandler
	biomarkerHandler *BiomarkerHandler
	polarityHandler  *PolarityHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		scoreHandler:     NewScoreHandler(deps, log),
		biomarkerHandler: NewBiomarkerHandler(deps, log),
		polarityHandler:  NewPolarityHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", instrument(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", instrument(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/stats", instrument(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/score", instrument(s.scoreHandler.HandleClassifyScore, "score"))
	mux.HandleFunc("/v1/biomarkers/classify", instrument(s.biomarkerHandler.HandleClassifyReading, "biomarker"))
	mux.HandleFunc("/v1/panels/classify", instrument(s.biomarkerHandler.HandleClassifyPanel, "panel"))
	mux.HandleFunc("/v1/polarity", instrument(s.polarityHandler.HandleGetPolarity, "polarity"))
}

func instrument(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a single JSON value from the body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: %w", ErrPayloadTooLarge, err)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

// writeDecodeError maps a decodeJSON failure to a response.
func writeDecodeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrPayloadTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", NewKind(op, ErrPayloadTooLarge))
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
}

func methodNotAllowed(w http.ResponseWriter, op, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethod))
}
