package smoketest

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/vitals/internal/domain/model"
	"github.com/okian/vitals/internal/domain/polarity"
)

const (
	randomFloatDivisor = 1000000
	maxTrendPercent    = 40
	maxValue           = 300
	// One in unknownEvery readings gets an id outside every polarity table.
	unknownEvery = 4
)

var knownIDs = []string{
	polarity.TotalCholesterol,
	polarity.LDLCholesterol,
	polarity.Glucose,
	polarity.Creatinine,
	"hdl_cholesterol",
	"vitamin_d",
	"hemoglobin",
	"ferritin",
}

var trends = []model.Trend{model.TrendUp, model.TrendDown, model.TrendStable}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func pick[T any](items []T) T {
	return items[int(getRandomFloat()*float64(len(items)))%len(items)]
}

// generateReadings builds n readings spread across statuses, trends and ids.
func generateReadings(n int) []model.Reading {
	statuses := model.Statuses()
	out := make([]model.Reading, n)
	for i := range out {
		id := pick(knownIDs)
		if i%unknownEvery == 0 {
			id = "marker_" + uuid.NewString()[:8]
		}
		out[i] = model.Reading{
			ID:           id,
			Name:         id,
			Unit:         "u",
			Value:        float64(int(getRandomFloat()*maxValue*10)) / 10,
			Status:       pick(statuses),
			Trend:        pick(trends),
			TrendPercent: float64(int(getRandomFloat()*maxTrendPercent*10)) / 10,
		}
	}
	return out
}
