package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/lab1/internal/prediction"
	"github.com/spf13/cobra"
)

// transcriptColumnWidth is the display width of the transcript column
// unless --full is given.
const transcriptColumnWidth = 60

func newPatternsCommand() *cobra.Command {
	var (
		dir  string
		full bool
	)

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the filename patterns and their canned transcripts",
		Long: `List the active pattern table in match order. A file gets the transcript of
the first pattern whose text occurs in its lowercased name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return patternsCommandE(cmd, dir, full)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to load config from (default: current directory)")
	cmd.Flags().BoolVar(&full, "full", false, "Print transcripts without truncation")

	return cmd
}

func patternsCommandE(cmd *cobra.Command, dir string, full bool) error {
	cfg, err := loadProjectConfig(dir)
	if err != nil {
		return err
	}

	predictor, err := newPredictor(cfg)
	if err != nil {
		return err
	}

	src, ok := predictor.(prediction.PatternSource)
	if !ok {
		return fmt.Errorf("%s predictor has no pattern table", predictor.Name())
	}
	patterns := src.Patterns()

	matchWidth := runewidth.StringWidth("MATCH")
	for _, p := range patterns {
		matchWidth = max(matchWidth, runewidth.StringWidth(p.Match))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  TRANSCRIPT\n", runewidth.FillRight("MATCH", matchWidth)) //nolint:errcheck
	for _, p := range patterns {
		transcript := p.Transcript
		if !full {
			transcript = runewidth.Truncate(transcript, transcriptColumnWidth, "...")
		}
		fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(p.Match, matchWidth), transcript) //nolint:errcheck
	}

	return nil
}
