package smoketest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/vitals/internal/domain/biomarker"
	"github.com/okian/vitals/internal/domain/model"
	"github.com/okian/vitals/internal/domain/polarity"
	"github.com/okian/vitals/internal/domain/types"
	"github.com/okian/vitals/pkg/logger"
)

const workerChannelMultiplier = 2

// Run executes a complete smoke run and returns the collected stats. The
// error wraps ErrMismatch or ErrRequest when any reading failed, and
// ErrInvalidConfig with nil stats when cfg is rejected.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("smoketest")
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("readings", cfg.NumReadings),
		logger.Int("workers", cfg.Workers),
	)

	if err := client.getJSON(ctx, "/healthz", nil); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	// The server may run a configured polarity table; mirror it locally.
	var pol struct {
		LowerIsBetter []string `json:"lower_is_better"`
	}
	if err := client.getJSON(ctx, "/v1/polarity", &pol); err != nil {
		return stats, fmt.Errorf("%w: polarity: %w", ErrRequest, err)
	}
	local := biomarker.New(biomarker.WithPolarityTable(polarity.New(pol.LowerIsBetter...)))

	readings := generateReadings(cfg.NumReadings)
	stats.ReadingsGenerated = len(readings)

	submitReadings(ctx, cfg, client, local, readings, stats)
	checkPanels(ctx, cfg, client, local, readings, stats)

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "final statistics",
		logger.Int("readingsSubmitted", stats.ReadingsSubmitted),
		logger.Int("readingsMatched", stats.ReadingsMatched),
		logger.Int("mismatches", stats.Mismatches),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("panelsChecked", stats.PanelsChecked),
		logger.String("duration", stats.Duration.String()),
	)

	if stats.Mismatches > 0 {
		return stats, fmt.Errorf("%w: %d readings", ErrMismatch, stats.Mismatches)
	}
	if stats.RequestsFailed > 0 {
		return stats, fmt.Errorf("%w: %d requests", ErrRequest, stats.RequestsFailed)
	}
	return stats, nil
}

// submitReadings posts each reading through a worker pool.
func submitReadings(ctx context.Context, cfg *Config, client *httpClient, local *biomarker.Classifier, readings []model.Reading, stats *Stats) {
	log := logger.Named("smoketest")
	var submitted, matched, mismatched, failed atomic.Int64

	ch := make(chan model.Reading, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range ch {
				submitted.Add(1)
				var got types.Biomarker
				if err := client.postJSON(ctx, "/v1/biomarkers/classify", r, &got); err != nil {
					failed.Add(1)
					log.Warn(ctx, "classify request failed", logger.String("id", r.ID), logger.Error(err))
					continue
				}
				if want := local.Classify(r); got != want {
					mismatched.Add(1)
					if cfg.Verbose {
						log.Warn(ctx, "descriptor mismatch", logger.Any("want", want), logger.Any("got", got))
					}
					continue
				}
				matched.Add(1)
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, r := range readings {
			select {
			case <-ctx.Done():
				return
			case ch <- r:
			}
		}
	}()
	wg.Wait()

	stats.ReadingsSubmitted = int(submitted.Load())
	stats.ReadingsMatched = int(matched.Load())
	stats.Mismatches += int(mismatched.Load())
	stats.RequestsFailed += int(failed.Load())
}

// checkPanels sends the readings in panel-sized chunks and compares results
// position by position.
func checkPanels(ctx context.Context, cfg *Config, client *httpClient, local *biomarker.Classifier, readings []model.Reading, stats *Stats) {
	log := logger.Named("smoketest")
	size := cfg.PanelSize
	for start := 0; start < len(readings); start += size {
		chunk := readings[start:min(start+size, len(readings))]
		var got types.Panel
		if err := client.postJSON(ctx, "/v1/panels/classify", map[string]any{"readings": chunk}, &got); err != nil {
			stats.RequestsFailed++
			log.Warn(ctx, "panel request failed", logger.Int("offset", start), logger.Error(err))
			continue
		}
		stats.PanelsChecked++
		if len(got.Results) != len(chunk) || got.Summary.Total != len(chunk) {
			stats.Mismatches++
			continue
		}
		for i, r := range chunk {
			if local.Classify(r) != got.Results[i] {
				stats.Mismatches++
			}
		}
	}
}
