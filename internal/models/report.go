package models

import (
	"fmt"
	"time"
)

// TimestampLayout is the on-disk timestamp shape: local wall-clock time with
// microsecond precision and no zone offset.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Default report metadata.
const (
	DefaultLab         = "Lab 1 - Hardcoded AI Prediction"
	DefaultDescription = "Simulated AI prediction for medical consultation"
)

// PredictionRecord is the result of one simulated transcription.
type PredictionRecord struct {
	Transcript string `json:"transcript"`
}

// ReportDocument is the JSON envelope written at the end of a run.
// Field order here is the key order on disk.
type ReportDocument struct {
	Timestamp   string                      `json:"timestamp"`
	Lab         string                      `json:"lab"`
	Description string                      `json:"description"`
	Predictions map[string]PredictionRecord `json:"predictions"`
}

// NewReportDocument wraps predictions with a timestamp and static metadata.
// Empty lab/description fall back to the defaults.
func NewReportDocument(now time.Time, lab, description string, predictions map[string]PredictionRecord) *ReportDocument {
	if lab == "" {
		lab = DefaultLab
	}
	if description == "" {
		description = DefaultDescription
	}
	if predictions == nil {
		predictions = map[string]PredictionRecord{}
	}

	return &ReportDocument{
		Timestamp:   now.Format(TimestampLayout),
		Lab:         lab,
		Description: description,
		Predictions: predictions,
	}
}

// timestampLayouts are tried in order by ParsedTimestamp. The second one is
// what an ISO-8601 writer emits when the fractional part is zero.
var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05",
}

// ParsedTimestamp parses Timestamp as local time. Offsets (RFC 3339) are
// accepted too.
func (d *ReportDocument) ParsedTimestamp() (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, d.Timestamp, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, d.Timestamp); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid report timestamp %q", d.Timestamp)
}
