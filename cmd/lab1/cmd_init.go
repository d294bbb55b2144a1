package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spboyer/lab1/internal/models"
	"github.com/spboyer/lab1/internal/prediction"
	"github.com/spboyer/lab1/internal/projectconfig"
	"github.com/spboyer/lab1/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a .lab1.yaml holding the default settings",
		Long: `Write a .lab1.yaml project config holding the default input and output
files, the simulated delay, the report metadata and the built-in pattern table.

When stdin is a terminal, or with --interactive, a short form asks for the
input file, the report file and the delay. An existing .lab1.yaml is never
overwritten.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for the settings instead of using defaults")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// Create the root directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	answers := &wizard.ConfigAnswers{
		Input:  projectconfig.DefaultInput,
		Output: projectconfig.DefaultOutput,
		Delay:  prediction.DefaultDelay,
	}
	if interactive || isTerminalInput(cmd.InOrStdin()) {
		var err error
		answers, err = wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout(), *answers)
		if err != nil {
			return err
		}
	}

	cfg := projectconfig.New()
	cfg.Input = answers.Input
	cfg.Output = answers.Output
	cfg.Report = projectconfig.ReportConfig{
		Lab:         models.DefaultLab,
		Description: models.DefaultDescription,
	}
	cfg.Predictor.Params = map[string]any{
		"delay":    answers.Delay.String(),
		"patterns": prediction.DefaultPatterns(),
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", projectconfig.FileName, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path) //nolint:errcheck
	return nil
}

func isTerminalInput(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
