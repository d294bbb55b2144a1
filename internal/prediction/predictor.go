package prediction

//go:generate go tool mockgen -source=predictor.go -destination=mock_predictor.go -package=prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/lab1/internal/models"
)

// Kind identifies a predictor implementation.
type Kind string

const (
	KindHardcoded Kind = "hardcoded"
)

var (
	// ErrNoPrediction is returned when no canned result exists for a file.
	ErrNoPrediction = errors.New("no prediction available")

	// ErrUnknownPredictor is returned by Create for an unregistered kind.
	ErrUnknownPredictor = errors.New("unknown predictor kind")
)

// Predictor turns an audio file into a PredictionRecord.
type Predictor interface {
	// Name returns the predictor kind, for logs and console output
	Name() string

	// Predict produces the record for audioPath. It blocks for the
	// simulated processing time and honors ctx cancellation.
	Predict(ctx context.Context, audioPath string) (*models.PredictionRecord, error)
}

// Create builds a predictor of the given kind. params is the free-form
// `predictor.config` block from .lab1.yaml.
func Create(kind Kind, params map[string]any) (Predictor, error) {
	switch kind {
	case KindHardcoded, "":
		var v struct {
			Delay    time.Duration `mapstructure:"delay"`
			Patterns []Pattern     `mapstructure:"patterns"`
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused: true,
			Result:      &v,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(params); err != nil {
			return nil, fmt.Errorf("decoding %s predictor config: %w", KindHardcoded, err)
		}

		opts := HardcodedOptions{Patterns: v.Patterns}
		if _, ok := params["delay"]; ok {
			opts.Delay = &v.Delay
		}
		return NewHardcodedPredictor(opts)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPredictor, kind)
	}
}
