package prediction

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spboyer/lab1/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDelay is how long a prediction pretends to take.
const DefaultDelay = 500 * time.Millisecond

// ConsultationTranscript is the canned echocardiography dictation returned
// for consultation recordings.
const ConsultationTranscript = "Aorta la inel 8, aorta la sinusuri 12, aorta ascendentă 10, AS 13, VD 6, SIV 3, VS 20 pe 12, perete posterior 4, fracție de ejecție 60%."

// Pattern maps a filename substring to a canned transcript.
type Pattern struct {
	Match      string `mapstructure:"match" yaml:"match"`
	Transcript string `mapstructure:"transcript" yaml:"transcript"`
}

// DefaultPatterns returns the built-in pattern table.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Match: "consultatie", Transcript: ConsultationTranscript},
	}
}

// PatternSource is implemented by predictors backed by a pattern table.
type PatternSource interface {
	Patterns() []Pattern
}

// HardcodedOptions configures a HardcodedPredictor. A nil Delay means
// DefaultDelay; an empty Patterns means DefaultPatterns.
type HardcodedOptions struct {
	Delay    *time.Duration
	Patterns []Pattern
}

// HardcodedPredictor returns canned transcripts chosen by a case-insensitive
// substring match on the file's base name. Patterns are tried in order and
// the first match wins.
type HardcodedPredictor struct {
	delay    time.Duration
	patterns []Pattern
	folded   []string
}

// NewHardcodedPredictor validates opts and builds the predictor.
func NewHardcodedPredictor(opts HardcodedOptions) (*HardcodedPredictor, error) {
	delay := DefaultDelay
	if opts.Delay != nil {
		delay = *opts.Delay
	}
	if delay < 0 {
		return nil, fmt.Errorf("delay must not be negative, got %s", delay)
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	p := &HardcodedPredictor{
		delay:    delay,
		patterns: make([]Pattern, 0, len(patterns)),
		folded:   make([]string, 0, len(patterns)),
	}
	for i, pat := range patterns {
		if strings.TrimSpace(pat.Match) == "" {
			return nil, fmt.Errorf("pattern %d: match must not be empty", i)
		}
		if strings.TrimSpace(pat.Transcript) == "" {
			return nil, fmt.Errorf("pattern %d (%q): transcript must not be empty", i, pat.Match)
		}
		p.patterns = append(p.patterns, pat)
		p.folded = append(p.folded, fold(pat.Match))
	}

	return p, nil
}

func (p *HardcodedPredictor) Name() string { return string(KindHardcoded) }

// Delay returns the simulated processing time.
func (p *HardcodedPredictor) Delay() time.Duration { return p.delay }

// Patterns returns a copy of the active pattern table.
func (p *HardcodedPredictor) Patterns() []Pattern {
	out := make([]Pattern, len(p.patterns))
	copy(out, p.patterns)
	return out
}

func (p *HardcodedPredictor) Predict(ctx context.Context, audioPath string) (*models.PredictionRecord, error) {
	if err := wait(ctx, p.delay); err != nil {
		return nil, err
	}

	base := filepath.Base(audioPath)
	name := fold(base)

	for i, match := range p.folded {
		if strings.Contains(name, match) {
			slog.Debug("Prediction resolved", "file", base, "pattern", p.patterns[i].Match)
			return &models.PredictionRecord{Transcript: p.patterns[i].Transcript}, nil
		}
	}

	return nil, fmt.Errorf("%w for %q", ErrNoPrediction, base)
}

// fold lowercases s with Unicode rules. A Caser is not safe for concurrent
// use, so one is built per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
