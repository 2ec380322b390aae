// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/vitals/internal/domain/types"
	"github.com/okian/vitals/pkg/logger"
)

// ScoreDependencies defines the interface for score classification.
type ScoreDependencies interface {
	ClassifyScore(ctx context.Context, score float64) types.ScoreBand
}

// scoreRequest is the body of POST /v1/score. Score is a pointer so that an
// omitted field is distinguishable from zero.
type scoreRequest struct {
	Score *float64 `json:"score"`
}

// ScoreHandler handles aggregate score requests.
type ScoreHandler struct {
	deps ScoreDependencies
	log  logger.Logger
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies, log logger.Logger) *ScoreHandler {
	return &ScoreHandler{deps: deps, log: log}
}

// HandleClassifyScore handles POST /v1/score requests.
func (h *ScoreHandler) HandleClassifyScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify_score"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn(r.Context(), "invalid score request", logger.String("request_id", RequestIDFrom(r.Context())), logger.Error(err))
		writeDecodeError(w, op, err)
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing score")))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ClassifyScore(r.Context(), *req.Score))
}
