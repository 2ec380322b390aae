// Package scoring maps an aggregate health score to its presentation band.
package scoring

import (
	"math"

	"github.com/okian/vitals/internal/domain/types"
)

// Band thresholds. Lower bounds are inclusive and apply to the raw score.
const (
	excellentMin = 80
	goodMin      = 65
	fairMin      = 50
	poorMin      = 35

	maxScoreValue = 100
)

// rule is one row of the band table.
type rule struct {
	min   float64
	band  types.Band
	color types.Color
}

// bands is evaluated high to low; the first matching row wins.
var bands = []rule{
	{min: excellentMin, band: types.BandExcellent, color: types.ColorGreen},
	{min: goodMin, band: types.BandGood, color: types.ColorLightGreen},
	{min: fairMin, band: types.BandFair, color: types.ColorOrange},
	{min: poorMin, band: types.BandPoor, color: types.ColorRedOrange},
}

// Classifier maps a score to its band.
type Classifier interface {
	Classify(score float64) types.ScoreBand
}

// BandClassifier implements Classifier with the fixed five-band table.
// It holds no state and is safe for concurrent use.
type BandClassifier struct{}

// NewBandClassifier creates a band classifier.
func NewBandClassifier() *BandClassifier {
	return &BandClassifier{}
}

// Classify returns the band for score. Thresholds use the raw score, so 150
// bands as EXCELLENT while Progress saturates at 1. Scores that match no row
// (including NaN) are CRITICAL.
func (c *BandClassifier) Classify(score float64) types.ScoreBand {
	band, color := types.BandCritical, types.ColorRed
	for _, r := range bands {
		if score >= r.min {
			band, color = r.band, r.color
			break
		}
	}
	return types.ScoreBand{
		Score:    score,
		Band:     band,
		Label:    string(band),
		Color:    color,
		Hex:      color.Hex(),
		Progress: Progress(score),
	}
}

// Progress clamps score to [0, 100] and returns it as a fraction.
func Progress(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(maxScoreValue, score)) / maxScoreValue
}
