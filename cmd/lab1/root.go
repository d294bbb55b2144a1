package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "lab1",
		Short: "Lab 1 - hardcoded AI transcription of a medical consultation",
		Long: `Lab 1 simulates an AI transcription model for a recorded medical consultation.

It checks for consultatie.wav, pretends to process it, and writes the canned
transcript to lab1_hardcoded_predictions.json. Running lab1 with no
subcommand is the same as lab1 run.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandE(cmd, opts)
		},
	}

	addRunFlags(cmd, opts)

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newPatternsCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newShowCommand())

	return cmd
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
