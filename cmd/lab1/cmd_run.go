package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spboyer/lab1/internal/orchestration"
	"github.com/spboyer/lab1/internal/prediction"
	"github.com/spboyer/lab1/internal/projectconfig"
	"github.com/spboyer/lab1/internal/utils"
	"github.com/spf13/cobra"
)

type runOptions struct {
	dir     string
	input   string
	output  string
	delay   time.Duration
	verbose bool
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the hardcoded prediction",
		Long: `Check for the input recording, simulate an AI transcription of it and save
the result as a timestamped JSON report.

A missing input file is reported and is not an error. Settings come from
.lab1.yaml, then LAB1_* environment variables (or a .env file), then flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandE(cmd, opts)
		},
	}

	addRunFlags(cmd, opts)

	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Directory holding the input, output and config (default: current directory)")
	cmd.Flags().StringVar(&opts.input, "input", "", "Audio file to process (default: "+projectconfig.DefaultInput+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output JSON file for predictions (default: "+projectconfig.DefaultOutput+")")
	cmd.Flags().DurationVar(&opts.delay, "delay", prediction.DefaultDelay, "Simulated processing time")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output with timings")
}

// applyFlags overlays flags the user set explicitly onto cfg.
func (o *runOptions) applyFlags(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = o.input
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("delay") {
		cfg.SetDelay(o.delay)
	}
}

func runCommandE(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := loadProjectConfig(opts.dir)
	if err != nil {
		return err
	}
	opts.applyFlags(cmd, cfg)

	predictor, err := newPredictor(cfg)
	if err != nil {
		return err
	}

	runner := orchestration.NewRunner(orchestration.Config{
		InputPath:   utils.ResolvePath(cfg.Input, opts.dir),
		OutputPath:  utils.ResolvePath(cfg.Output, opts.dir),
		Lab:         cfg.Report.Lab,
		Description: cfg.Report.Description,
	}, predictor)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "This is the hardcoded AI prediction system for Lab 1.") //nolint:errcheck
	fmt.Fprintln(out)                                                          //nolint:errcheck

	printer := newConsolePrinter(out, opts.verbose)
	defer printer.close()

	runner.OnProgress(printer.handle)
	runner.OnProgress(orchestration.SlogListener)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, err = runner.Run(ctx)
	return err
}
