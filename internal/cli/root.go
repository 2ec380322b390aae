// Package cli implements the vitals command line: it classifies scores and
// readings with the same service as the HTTP API and renders the
// descriptors to a terminal.
package cli

import (
	"context"
	"fmt"
	"io"

	service "github.com/okian/vitals/internal/app"
	"github.com/okian/vitals/internal/config"
	"github.com/okian/vitals/pkg/logger"
	"github.com/spf13/cobra"
)

// env is shared by the subcommands once the root pre-run has loaded config.
type env struct {
	svc *service.Service
	r   *renderer
}

// NewRootCommand builds the command tree. Output goes to out and logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "vitals",
		Short:         "Classify health scores and biomarker readings",
		Long:          "vitals maps aggregate health scores and lab readings to bands, colours and trend labels.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd.Context(), cmd, errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().String("config", "", "Path to YAML config file (overrides VITALS_CONFIG)")
	root.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	root.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn, error")

	root.AddCommand(newScoreCmd(e))
	root.AddCommand(newReadingCmd(e))
	root.AddCommand(newPanelCmd(e))
	root.AddCommand(newPolarityCmd(e))
	root.AddCommand(newSmokeCmd(e))
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, out, errOut io.Writer, args []string) error {
	root := NewRootCommand(out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (e *env) setup(ctx context.Context, cmd *cobra.Command, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(ctx, path)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.WithWriter(errOut), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	level := cfg.LogLevel
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		level = l
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	e.r = newRenderer(cmd.OutOrStdout(), noColor)
	e.svc = service.New(
		service.WithLogger(logger.Named("cli")),
		service.WithLowerIsBetter(cfg.LowerIsBetter),
		service.WithMaxPanelSize(cfg.MaxPanelSize),
		service.WithMetrics(false),
	)
	return nil
}
