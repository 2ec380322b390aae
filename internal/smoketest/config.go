// Package smoketest drives a running vitals server with generated readings
// and checks every response against a local classifier.
package smoketest

import (
	"fmt"
	"time"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumReadings int           // Number of readings to generate
	PanelSize   int           // Readings per panel request
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // Log every mismatch
}

// Validate rejects settings that cannot drive a run.
func (c *Config) Validate() error {
	switch {
	case c.NumReadings < 0:
		return fmt.Errorf("%w: readings must not be negative, got %d", ErrInvalidConfig, c.NumReadings)
	case c.PanelSize < 1:
		return fmt.Errorf("%w: panel size must be positive, got %d", ErrInvalidConfig, c.PanelSize)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Stats holds run statistics.
type Stats struct {
	ReadingsGenerated int
	ReadingsSubmitted int
	ReadingsMatched   int
	Mismatches        int
	RequestsFailed    int
	PanelsChecked     int
	StartTime         time.Time
	Duration          time.Duration
}
