// Package biomarker classifies a single lab reading into its status colour,
// trend judgement and trend phrase.
package biomarker

import (
	"strconv"

	"github.com/okian/vitals/internal/domain/model"
	"github.com/okian/vitals/internal/domain/polarity"
	"github.com/okian/vitals/internal/domain/types"
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithPolarityTable replaces the built-in lower-is-better table.
func WithPolarityTable(t *polarity.Table) Option {
	return func(c *Classifier) {
		if t != nil {
			c.table = t
		}
	}
}

// Classifier maps readings to presentation descriptors. Its only state is
// the read-only polarity table, so one instance can serve any number of
// goroutines.
type Classifier struct {
	table *polarity.Table
}

// New creates a classifier using the default polarity table unless
// overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{table: polarity.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the polarity table in use.
func (c *Classifier) Table() *polarity.Table {
	return c.table
}

// Classify derives the descriptor for r. It never fails: unknown statuses
// render gray and unknown trends render as stable.
func (c *Classifier) Classify(r model.Reading) types.Biomarker {
	pol := c.table.Of(r.ID)
	good := IsGoodTrend(pol, r.Trend)

	out := types.Biomarker{
		ID:          r.ID,
		Name:        r.Name,
		Unit:        r.Unit,
		LastUpdated: r.LastUpdated,
		Value:       r.Value,
		Status:      string(r.Status),
		StatusColor: StatusColor(r.Status),
		Polarity:    pol,
		IsGoodTrend: good,
		Glyph:       GlyphFor(r.Trend),
	}

	switch r.Trend {
	case model.TrendUp, model.TrendDown:
		if good {
			out.TrendColor, out.TrendLabel = types.ColorGreen, types.LabelImproving
		} else {
			out.TrendColor, out.TrendLabel = types.ColorRed, types.LabelWorsening
		}
		out.ShowPercent = true
		out.PercentText = FormatPercent(r.TrendPercent)
	case model.TrendStable:
		out.TrendColor, out.TrendLabel = types.ColorGray, types.LabelStable
	default:
		out.TrendColor, out.TrendLabel = types.ColorGray, types.LabelStable
	}
	return out
}

// IsGoodTrend reports whether trend moves in the favourable direction for pol.
// Stable and unknown trends are never good.
func IsGoodTrend(pol types.Polarity, trend model.Trend) bool {
	switch pol {
	case types.LowerIsBetter:
		return trend == model.TrendDown
	case types.HigherIsBetter:
		return trend == model.TrendUp
	default:
		return trend == model.TrendUp
	}
}

// StatusColor maps a status to its colour token.
func StatusColor(s model.Status) types.Color {
	switch s {
	case model.StatusOptimal:
		return types.ColorGreenStrong
	case model.StatusNormal:
		return types.ColorGreenMedium
	case model.StatusBorderline:
		return types.ColorOrange
	case model.StatusHigh:
		return types.ColorOrangeRed
	case model.StatusLow:
		return types.ColorRed
	default:
		return types.ColorGray
	}
}

// GlyphFor selects the arrow for a trend. Polarity never changes the arrow.
func GlyphFor(t model.Trend) types.Glyph {
	switch t {
	case model.TrendUp:
		return types.GlyphArrowUp
	case model.TrendDown:
		return types.GlyphArrowDown
	case model.TrendStable:
		return types.GlyphFlat
	default:
		return types.GlyphFlat
	}
}

// FormatPercent renders a trend magnitude without clamping, e.g. "12%".
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
