// Package service composes the score-band and biomarker classifiers into the
// facade used by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/okian/vitals/internal/domain/biomarker"
	"github.com/okian/vitals/internal/domain/model"
	"github.com/okian/vitals/internal/domain/polarity"
	"github.com/okian/vitals/internal/domain/scoring"
	"github.com/okian/vitals/internal/domain/types"
	"github.com/okian/vitals/pkg/logger"
	"github.com/okian/vitals/pkg/metrics"
)

const defaultMaxPanelSize = 200

// Service classifies scores, readings and panels. Every method is safe for
// concurrent use; the only mutable state is the statistics counters.
type Service struct {
	scores    scoring.Classifier
	readings  *biomarker.Classifier
	table     *polarity.Table
	maxPanel  int
	logger    logger.Logger
	metricsOn bool

	scoreCount   atomic.Int64
	readingCount atomic.Int64
	panelCount   atomic.Int64
	defaultCount atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPolarityTable replaces the built-in lower-is-better table.
func WithPolarityTable(t *polarity.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithLowerIsBetter builds the polarity table from ids. An empty list keeps
// the built-in table.
func WithLowerIsBetter(ids []string) Option {
	return func(s *Service) {
		if len(ids) > 0 {
			s.table = polarity.New(ids...)
		}
	}
}

// WithMaxPanelSize caps the readings accepted by ClassifyPanel.
func WithMaxPanelSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPanel = n
		}
	}
}

// WithScoreClassifier swaps the score classifier, mainly for tests.
func WithScoreClassifier(c scoring.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.scores = c
		}
	}
}

// WithMetrics toggles Prometheus recording.
func WithMetrics(enabled bool) Option {
	return func(s *Service) {
		s.metricsOn = enabled
	}
}

// New constructs a Service ready for use.
func New(opts ...Option) *Service {
	s := &Service{
		scores:    scoring.NewBandClassifier(),
		table:     polarity.Default(),
		maxPanel:  defaultMaxPanelSize,
		metricsOn: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.readings = biomarker.New(biomarker.WithPolarityTable(s.table))
	return s
}

// ClassifyScore returns the band descriptor for an aggregate score.
func (s *Service) ClassifyScore(ctx context.Context, score float64) types.ScoreBand {
	out := s.scores.Classify(score)
	s.scoreCount.Add(1)
	if s.metricsOn {
		metrics.RecordScoreClassification(string(out.Band))
	}
	s.logger.Debug(ctx, "classified score",
		logger.Float64("score", score),
		logger.String("band", string(out.Band)),
	)
	return out
}

// ClassifyReading returns the descriptor for a single biomarker reading.
func (s *Service) ClassifyReading(ctx context.Context, r model.Reading) types.Biomarker {
	out := s.readings.Classify(r)
	s.observe(ctx, r, out)
	return out
}

// ClassifyPanel classifies readings in input order and summarises them.
// Panels larger than the configured maximum are rejected.
func (s *Service) ClassifyPanel(ctx context.Context, readings []model.Reading) (types.Panel, error) {
	if len(readings) > s.maxPanel {
		s.logger.Warn(ctx, "panel rejected",
			logger.Int("size", len(readings)),
			logger.Int("max", s.maxPanel),
		)
		return types.Panel{}, fmt.Errorf("%w: %d readings exceeds limit of %d", ErrPanelTooLarge, len(readings), s.maxPanel)
	}

	panel := types.Panel{
		Results: make([]types.Biomarker, 0, len(readings)),
		Summary: types.PanelSummary{
			ByStatus:       make(map[string]int),
			NeedsAttention: []string{},
		},
	}
	for _, r := range readings {
		out := s.readings.Classify(r)
		s.observe(ctx, r, out)
		panel.Results = append(panel.Results, out)
		summarize(&panel.Summary, r, out)
	}

	s.panelCount.Add(1)
	if s.metricsOn {
		metrics.RecordPanelSize(len(readings))
	}
	s.logger.Debug(ctx, "classified panel",
		logger.Int("size", len(readings)),
		logger.Int("needs_attention", len(panel.Summary.NeedsAttention)),
	)
	return panel, nil
}

func summarize(sum *types.PanelSummary, r model.Reading, out types.Biomarker) {
	sum.Total++
	sum.ByStatus[out.Status]++
	switch out.TrendLabel {
	case types.LabelImproving:
		sum.Improving++
	case types.LabelWorsening:
		sum.Worsening++
	default:
		sum.Stable++
	}
	if r.Status.NeedsAttention() {
		sum.NeedsAttention = append(sum.NeedsAttention, r.ID)
	}
}

func (s *Service) observe(ctx context.Context, r model.Reading, out types.Biomarker) {
	s.readingCount.Add(1)
	defaulted := !s.table.Contains(r.ID)
	if defaulted {
		s.defaultCount.Add(1)
	}
	if s.metricsOn {
		metrics.RecordBiomarkerClassification(string(r.Status), r.Status.Known())
		metrics.RecordTrendVerdict(out.TrendLabel)
		if defaulted {
			metrics.RecordPolarityDefault()
		}
	}
	if !r.Status.Known() || !r.Trend.Known() {
		s.logger.Warn(ctx, "reading outside known enumeration; using fallback",
			logger.String("id", r.ID),
			logger.String("status", string(r.Status)),
			logger.String("trend", string(r.Trend)),
		)
		return
	}
	s.logger.Debug(ctx, "classified reading",
		logger.String("id", r.ID),
		logger.String("status_color", string(out.StatusColor)),
		logger.String("trend_label", out.TrendLabel),
		logger.Bool("polarity_default", defaulted),
	)
}

// LowerIsBetter returns the active lower-is-better ids, sorted.
func (s *Service) LowerIsBetter(_ context.Context) []string {
	return s.table.IDs()
}

// MaxPanelSize returns the configured panel limit.
func (s *Service) MaxPanelSize() int {
	return s.maxPanel
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	return map[string]any{
		"scoresClassified":   s.scoreCount.Load(),
		"readingsClassified": s.readingCount.Load(),
		"panelsClassified":   s.panelCount.Load(),
		"polarityDefaults":   s.defaultCount.Load(),
		"lowerIsBetterCount": s.table.Len(),
		"maxPanelSize":       s.maxPanel,
	}
}
