package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Run finished, or the input was missing
	ExitReportInvalid = 1 // show --verify found schema violations
	ExitError         = 2 // Configuration or runtime error
)

// ReportInvalidError indicates that a saved report was read successfully
// but does not match the report schema.
type ReportInvalidError struct {
	Path   string
	Errors []string
}

func (e *ReportInvalidError) Error() string {
	return fmt.Sprintf("%s failed validation with %d error(s)", e.Path, len(e.Errors))
}

// exitCode maps an error returned by execute to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var invalidErr *ReportInvalidError
	if errors.As(err, &invalidErr) {
		return ExitReportInvalid
	}

	// All other errors are configuration/runtime errors
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
