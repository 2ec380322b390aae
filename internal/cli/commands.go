package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/okian/vitals/internal/domain/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScoreCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "score <value>",
		Short: "Show the band for an aggregate health score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: score %q: %w", ErrInput, args[0], err)
			}
			e.r.score(e.svc.ClassifyScore(cmd.Context(), v))
			return nil
		},
	}
}

func newReadingCmd(e *env) *cobra.Command {
	var r model.Reading
	var status, trend string

	cmd := &cobra.Command{
		Use:   "reading",
		Short: "Classify a single biomarker reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			r.Status = model.Status(status)
			r.Trend = model.Trend(trend)
			e.r.biomarker(e.svc.ClassifyReading(cmd.Context(), r))
			return nil
		},
	}
	cmd.Flags().StringVar(&r.ID, "id", "", "Biomarker id used for the polarity lookup, e.g. glucose")
	cmd.Flags().StringVar(&r.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&r.Unit, "unit", "", "Display unit")
	cmd.Flags().Float64Var(&r.Value, "value", 0, "Measured value (display only)")
	cmd.Flags().StringVar(&status, "status", "", "optimal, normal, borderline, high or low")
	cmd.Flags().StringVar(&trend, "trend", string(model.TrendStable), "up, down or stable")
	cmd.Flags().Float64Var(&r.TrendPercent, "percent", 0, "Trend magnitude in percent")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPanelCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "panel <file>",
		Short: "Classify a YAML or JSON list of readings",
		Long:  "panel reads either a list of readings or an object with a \"readings\" list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("%w: read panel: %w", ErrInput, err)
			}
			readings, err := parsePanel(data)
			if err != nil {
				return err
			}
			p, err := e.svc.ClassifyPanel(cmd.Context(), readings)
			if err != nil {
				return err
			}
			e.r.panel(p)
			return nil
		},
	}
}

func newPolarityCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "polarity",
		Short: "List biomarkers where a lower value is better",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range e.svc.LowerIsBetter(cmd.Context()) {
				e.r.printf("%s\n", id)
			}
			return nil
		},
	}
}

// parsePanel accepts a bare list or {readings: [...]}. JSON parses as YAML.
func parsePanel(data []byte) ([]model.Reading, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: parse panel: %w", ErrInput, err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	doc := node.Content[0]

	var readings []model.Reading
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&readings); err != nil {
			return nil, fmt.Errorf("%w: decode readings: %w", ErrInput, err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Readings []model.Reading `yaml:"readings"`
		}
		if err := doc.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("%w: decode readings: %w", ErrInput, err)
		}
		readings = wrapper.Readings
	default:
		return nil, fmt.Errorf("%w: panel must be a list or an object with readings", ErrInput)
	}
	return readings, nil
}
