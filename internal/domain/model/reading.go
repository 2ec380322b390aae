// Package model contains domain models passed between layers.
package model

// Status is the qualitative classification of a biomarker's current value.
type Status string

// Known biomarker statuses. Values outside this set are tolerated and
// classified through the fallback branch.
const (
	StatusOptimal    Status = "optimal"
	StatusNormal     Status = "normal"
	StatusBorderline Status = "borderline"
	StatusHigh       Status = "high"
	StatusLow        Status = "low"
)

// Statuses lists the known statuses in display order.
func Statuses() []Status {
	return []Status{StatusOptimal, StatusNormal, StatusBorderline, StatusHigh, StatusLow}
}

// Known reports whether s is one of the enumerated statuses.
func (s Status) Known() bool {
	switch s {
	case StatusOptimal, StatusNormal, StatusBorderline, StatusHigh, StatusLow:
		return true
	default:
		return false
	}
}

// NeedsAttention is true for statuses outside the healthy range.
func (s Status) NeedsAttention() bool {
	switch s {
	case StatusBorderline, StatusHigh, StatusLow:
		return true
	case StatusOptimal, StatusNormal:
		return false
	default:
		return false
	}
}

// Trend is the direction of recent change in a biomarker's value.
type Trend string

// Known trends.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Known reports whether t is one of the enumerated trends.
func (t Trend) Known() bool {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return true
	default:
		return false
	}
}

// Reading is a single biomarker measurement as shown in the lab results list.
// Name, Unit, LastUpdated and Value are carried for display only.
type Reading struct {
	ID           string  `json:"id" yaml:"id"`                       // polarity lookup key
	Name         string  `json:"name" yaml:"name"`                   // display name
	Unit         string  `json:"unit" yaml:"unit"`                   // display unit, unvalidated
	LastUpdated  string  `json:"last_updated" yaml:"last_updated"`   // opaque display string
	Value        float64 `json:"value" yaml:"value"`                 // raw value, never classified
	Status       Status  `json:"status" yaml:"status"`               // optimal, normal, borderline, high, low
	Trend        Trend   `json:"trend" yaml:"trend"`                 // up, down, stable
	TrendPercent float64 `json:"trend_percent" yaml:"trend_percent"` // magnitude; unused when stable
}
