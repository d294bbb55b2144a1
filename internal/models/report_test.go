package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportDocument_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 15, 30, 123456000, time.Local)

	doc := NewReportDocument(now, "", "", nil)

	assert.Equal(t, "2024-03-07T09:15:30.123456", doc.Timestamp)
	assert.Equal(t, DefaultLab, doc.Lab)
	assert.Equal(t, DefaultDescription, doc.Description)
	require.NotNil(t, doc.Predictions)
	assert.Empty(t, doc.Predictions)
}

func TestNewReportDocument_CustomMetadata(t *testing.T) {
	preds := map[string]PredictionRecord{"a.wav": {Transcript: "hello"}}

	doc := NewReportDocument(time.Now(), "Lab X", "custom", preds)

	assert.Equal(t, "Lab X", doc.Lab)
	assert.Equal(t, "custom", doc.Description)
	assert.Equal(t, "hello", doc.Predictions["a.wav"].Transcript)
}

func TestReportDocument_JSONKeyOrder(t *testing.T) {
	doc := NewReportDocument(time.Now(), "", "", map[string]PredictionRecord{
		"consultatie.wav": {Transcript: "x"},
	})

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	s := string(data)

	keys := []string{`"timestamp"`, `"lab"`, `"description"`, `"predictions"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(s, k)
		require.NotEqual(t, -1, idx, "missing key %s", k)
		assert.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}
	assert.Contains(t, s, `"consultatie.wav":{"transcript":"x"}`)
}

func TestReportDocument_ParsedTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		wantErr   bool
	}{
		{"microseconds", "2024-03-07T09:15:30.123456", false},
		{"whole seconds", "2024-03-07T09:15:30", false},
		{"rfc3339", "2024-03-07T09:15:30Z", false},
		{"rfc3339 offset", "2024-03-07T09:15:30.5+02:00", false},
		{"garbage", "yesterday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &ReportDocument{Timestamp: tt.timestamp}
			ts, err := doc.ParsedTimestamp()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2024, ts.Year())
			assert.Equal(t, time.March, ts.Month())
		})
	}
}

func TestReportDocument_TimestampRoundTrip(t *testing.T) {
	now := time.Now()
	doc := NewReportDocument(now, "", "", nil)

	parsed, err := doc.ParsedTimestamp()
	require.NoError(t, err)
	assert.WithinDuration(t, now, parsed, time.Millisecond)
}
