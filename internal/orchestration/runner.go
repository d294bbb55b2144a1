package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/lab1/internal/models"
	"github.com/spboyer/lab1/internal/prediction"
	"github.com/spboyer/lab1/internal/report"
	"github.com/spboyer/lab1/internal/validation"
)

// Config describes a single run.
type Config struct {
	// InputPath is the audio file to check and predict on.
	InputPath string
	// OutputPath is where the JSON report is written.
	OutputPath string
	// Lab and Description are the report metadata; empty means default.
	Lab         string
	Description string
}

// Result summarizes a finished run.
type Result struct {
	RunID      string
	InputPath  string
	OutputPath string
	// Skipped is set when the input file was missing. Nothing was written.
	Skipped    bool
	Report     *models.ReportDocument
	DurationMs int64
}

// Runner checks the input, runs the predictor once and saves the report.
type Runner struct {
	cfg       Config
	predictor prediction.Predictor
	now       func() time.Time
	runID     string

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart        EventType = "run_start"
	EventInputMissing    EventType = "input_missing"
	EventPredictStart    EventType = "predict_start"
	EventPredictComplete EventType = "predict_complete"
	EventReportSaved     EventType = "report_saved"
	EventRunComplete     EventType = "run_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType  EventType
	RunID      string
	FileName   string
	DurationMs int64
	Details    map[string]any
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock replaces time.Now for the report timestamp.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// WithRunID fixes the correlation id instead of generating one.
func WithRunID(id string) RunnerOption {
	return func(r *Runner) {
		r.runID = id
	}
}

// NewRunner creates a new runner
func NewRunner(cfg Config, predictor prediction.Predictor, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:       cfg,
		predictor: predictor,
		now:       time.Now,
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	return r
}

// RunID returns the run's correlation id.
func (r *Runner) RunID() string { return r.runID }

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	event.RunID = r.runID
	for _, listener := range listeners {
		listener(event)
	}
}

// Run executes the flow. A missing input file is not an error: the result
// is marked Skipped and no report is written.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	fileName := filepath.Base(r.cfg.InputPath)
	log := slog.With("run_id", r.runID)

	result := &Result{
		RunID:      r.runID,
		InputPath:  r.cfg.InputPath,
		OutputPath: r.cfg.OutputPath,
	}

	r.notifyProgress(ProgressEvent{
		EventType: EventRunStart,
		FileName:  fileName,
		Details: map[string]any{
			"input":     r.cfg.InputPath,
			"output":    r.cfg.OutputPath,
			"predictor": r.predictor.Name(),
		},
	})

	if _, err := os.Stat(r.cfg.InputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("Input file missing", "input", r.cfg.InputPath)
			r.notifyProgress(ProgressEvent{
				EventType: EventInputMissing,
				FileName:  fileName,
			})
			result.Skipped = true
			result.DurationMs = time.Since(startTime).Milliseconds()
			return result, nil
		}
		return nil, fmt.Errorf("checking input %s: %w", r.cfg.InputPath, err)
	}

	record, err := r.predict(ctx, fileName)
	if err != nil {
		return nil, err
	}

	doc := models.NewReportDocument(r.now(), r.cfg.Lab, r.cfg.Description, map[string]models.PredictionRecord{
		fileName: *record,
	})

	if errs := validation.ValidateReport(doc); len(errs) > 0 {
		return nil, fmt.Errorf("report failed validation: %s", strings.Join(errs, "; "))
	}

	if err := report.Write(r.cfg.OutputPath, doc); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	log.Debug("Report saved", "output", r.cfg.OutputPath)

	r.notifyProgress(ProgressEvent{
		EventType: EventReportSaved,
		FileName:  fileName,
		Details: map[string]any{
			"output": r.cfg.OutputPath,
		},
	})

	result.Report = doc
	result.DurationMs = time.Since(startTime).Milliseconds()

	r.notifyProgress(ProgressEvent{
		EventType:  EventRunComplete,
		FileName:   fileName,
		DurationMs: result.DurationMs,
		Details: map[string]any{
			"count": len(doc.Predictions),
		},
	})

	return result, nil
}

// predict runs the predictor once. EventPredictComplete is sent on both
// success and failure so listeners can tear down anything started on
// EventPredictStart.
func (r *Runner) predict(ctx context.Context, fileName string) (*models.PredictionRecord, error) {
	r.notifyProgress(ProgressEvent{
		EventType: EventPredictStart,
		FileName:  fileName,
		Details: map[string]any{
			"predictor": r.predictor.Name(),
		},
	})

	start := time.Now()
	record, err := r.predictor.Predict(ctx, r.cfg.InputPath)
	if err == nil && record == nil {
		err = fmt.Errorf("%s predictor returned no record", r.predictor.Name())
	}

	details := map[string]any{}
	if err != nil {
		details["error"] = err.Error()
	} else {
		details["transcript"] = record.Transcript
	}
	r.notifyProgress(ProgressEvent{
		EventType:  EventPredictComplete,
		FileName:   fileName,
		DurationMs: time.Since(start).Milliseconds(),
		Details:    details,
	})

	if err != nil {
		return nil, fmt.Errorf("predicting %s: %w", fileName, err)
	}
	return record, nil
}
