package cli

import (
	"fmt"
	"runtime"
	"time"

	"github.com/okian/vitals/internal/smoketest"
	"github.com/spf13/cobra"
)

const (
	defaultSmokeReadings = 1000
	defaultSmokePanel    = 50
	defaultSmokeTimeout  = 10 * time.Second
)

func newSmokeCmd(e *env) *cobra.Command {
	cfg := &smoketest.Config{}
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Send generated readings to a running server and verify the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := smoketest.Run(cmd.Context(), cfg)
			if stats != nil {
				e.r.printf("%d/%d readings matched, %d panels checked, %d failed requests in %s\n",
					stats.ReadingsMatched, stats.ReadingsSubmitted, stats.PanelsChecked,
					stats.RequestsFailed, stats.Duration.Round(time.Millisecond))
			}
			if err != nil {
				return fmt.Errorf("smoke: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	cmd.Flags().IntVar(&cfg.NumReadings, "readings", defaultSmokeReadings, "Number of readings to generate")
	cmd.Flags().IntVar(&cfg.PanelSize, "panel-size", defaultSmokePanel, "Readings per panel request")
	cmd.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU()*2, "Number of concurrent workers")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", defaultSmokeTimeout, "HTTP request timeout")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Log every mismatch")
	return cmd
}
