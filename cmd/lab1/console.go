package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spboyer/lab1/internal/orchestration"
	"github.com/spboyer/lab1/internal/spinner"
)

// consolePrinter turns progress events into the user-facing console lines.
// It owns the spinner shown while a prediction is in flight.
type consolePrinter struct {
	out         io.Writer
	verbose     bool
	stopSpinner func()
}

func newConsolePrinter(out io.Writer, verbose bool) *consolePrinter {
	return &consolePrinter{
		out:         out,
		verbose:     verbose,
		stopSpinner: func() {},
	}
}

func (p *consolePrinter) handle(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventRunStart:
		fmt.Fprintln(p.out, "Lab 1: Hardcoded AI Medical Consultation Analysis") //nolint:errcheck
		fmt.Fprintln(p.out, strings.Repeat("=", 60))                             //nolint:errcheck
		if p.verbose {
			fmt.Fprintf(p.out, "  [RUN] %s predictor=%v\n", event.RunID, event.Details["predictor"]) //nolint:errcheck
		}
	case orchestration.EventInputMissing:
		fmt.Fprintf(p.out, "No %s file found!\n", event.FileName) //nolint:errcheck
	case orchestration.EventPredictStart:
		fmt.Fprintf(p.out, "Processing: %s\n", event.FileName) //nolint:errcheck
		fmt.Fprintln(p.out, strings.Repeat("-", 40))           //nolint:errcheck
		p.stopSpinner = spinner.StartIfTerminal(p.out, "Transcribing "+event.FileName)
	case orchestration.EventPredictComplete:
		p.close()
		if p.verbose {
			duration := time.Duration(event.DurationMs) * time.Millisecond
			fmt.Fprintf(p.out, "  [PREDICT] %v\n", duration) //nolint:errcheck
			if e, ok := event.Details["error"].(string); ok && e != "" {
				fmt.Fprintf(p.out, "  [ERROR] %s\n", e) //nolint:errcheck
			}
		}
		if transcript, ok := event.Details["transcript"].(string); ok {
			fmt.Fprintf(p.out, "AI Transcript: %s\n\n", transcript) //nolint:errcheck
		}
	case orchestration.EventReportSaved:
		fmt.Fprintf(p.out, "All predictions saved to: %v\n", event.Details["output"]) //nolint:errcheck
	case orchestration.EventRunComplete:
		count, _ := event.Details["count"].(int)
		fmt.Fprintf(p.out, "Processed %d file successfully\n", count) //nolint:errcheck
		if p.verbose {
			duration := time.Duration(event.DurationMs) * time.Millisecond
			fmt.Fprintf(p.out, "Completed in %v\n", duration) //nolint:errcheck
		}
	}
}

// close stops the spinner if one is running.
func (p *consolePrinter) close() {
	p.stopSpinner()
	p.stopSpinner = func() {}
}
