package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spboyer/lab1/internal/report"
	"github.com/spboyer/lab1/internal/utils"
	"github.com/spboyer/lab1/internal/validation"
	"github.com/spf13/cobra"
)

func newShowCommand() *cobra.Command {
	var (
		dir    string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "show [report.json]",
		Short: "Print a saved prediction report",
		Long: `Print a report written by lab1 run.

If no file is given, the configured output file is used. With --verify the
report is checked against the report schema first and the command exits
with code 1 when it does not match.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCommandE(cmd, args, dir, verify)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to load config and resolve the report from (default: current directory)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Validate the report against the schema")

	return cmd
}

func showCommandE(cmd *cobra.Command, args []string, dir string, verify bool) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := loadProjectConfig(dir)
		if err != nil {
			return err
		}
		path = utils.ResolvePath(cfg.Output, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	out := cmd.OutOrStdout()

	if verify {
		if errs := validation.ValidateReportBytes(data); len(errs) > 0 {
			fmt.Fprintf(out, "✗ %s\n", path) //nolint:errcheck
			for _, e := range errs {
				fmt.Fprintf(out, "  %s\n", e) //nolint:errcheck
			}
			return &ReportInvalidError{Path: path, Errors: errs}
		}
		fmt.Fprintf(out, "✓ %s matches the report schema\n\n", path) //nolint:errcheck
	}

	doc, err := report.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing report %s: %w", path, err)
	}

	fmt.Fprintf(out, "Lab:         %s\n", doc.Lab)         //nolint:errcheck
	fmt.Fprintf(out, "Description: %s\n", doc.Description) //nolint:errcheck
	fmt.Fprintf(out, "Timestamp:   %s\n", doc.Timestamp)   //nolint:errcheck
	if ts, err := doc.ParsedTimestamp(); err == nil {
		fmt.Fprintf(out, "Age:         %v\n", time.Since(ts).Round(time.Second)) //nolint:errcheck
	}
	fmt.Fprintln(out, strings.Repeat("-", 40)) //nolint:errcheck

	names := make([]string, 0, len(doc.Predictions))
	for name := range doc.Predictions {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(out, "%s\n  %s\n", name, doc.Predictions[name].Transcript) //nolint:errcheck
	}

	return nil
}
