package orchestration

import (
	"context"
	"log/slog"
	"sort"
)

// SlogListener logs every progress event at debug level. It is a no-op
// unless the default logger has debug enabled.
func SlogListener(event ProgressEvent) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{
		"type", event.EventType,
		"run_id", event.RunID,
	}

	attrs = addIf(attrs, "file", event.FileName)
	attrs = addIf(attrs, "duration_ms", event.DurationMs)

	keys := make([]string, 0, len(event.Details))
	for k := range event.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, event.Details[k])
	}

	slog.Debug("Progress event", attrs...)
}

func addIf[T comparable](attrs []any, name string, v T) []any {
	var zero T
	if v != zero {
		attrs = append(attrs, name, v)
	}

	return attrs
}
