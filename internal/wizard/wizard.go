package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ConfigAnswers holds the fields collected by RunConfigWizard.
type ConfigAnswers struct {
	Input  string
	Output string
	Delay  time.Duration
}

// RunConfigWizard runs an interactive huh form asking for the input audio
// file, the report path and the simulated delay. defaults pre-populates
// every field.
func RunConfigWizard(in io.Reader, out io.Writer, defaults ConfigAnswers) (*ConfigAnswers, error) {
	var (
		input    = defaults.Input
		output   = defaults.Output
		delayRaw = defaults.Delay.String()
	)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	// Each prompt then reads its own line only.
	var lines *lineReader
	accessible := false
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		accessible = true
		lines = newLineReader(in)
		in = lines
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Input audio file").
				Description("Recording to check for and predict on").
				Placeholder("consultatie.wav").
				Value(&input).
				Validate(requireValue("input file")),
			huh.NewInput().
				Title("Report file").
				Description("Where the JSON predictions are written").
				Placeholder("lab1_hardcoded_predictions.json").
				Value(&output).
				Validate(requireValue("report file")),
			huh.NewInput().
				Title("Simulated delay").
				Description("How long a prediction pretends to take, e.g. 500ms").
				Placeholder("500ms").
				Value(&delayRaw).
				Validate(func(s string) error {
					_, err := parseDelay(s)
					return err
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	if accessible {
		form = form.WithAccessible(true)
	}

	err := form.Run()
	if lines != nil && lines.count < fieldCount {
		return nil, errors.New("unexpected end of input")
	}
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	if err := requireValue("input file")(input); err != nil {
		return nil, err
	}
	if err := requireValue("report file")(output); err != nil {
		return nil, err
	}
	delay, err := parseDelay(delayRaw)
	if err != nil {
		return nil, err
	}

	return &ConfigAnswers{
		Input:  strings.TrimSpace(input),
		Output: strings.TrimSpace(output),
		Delay:  delay,
	}, nil
}

// fieldCount is the number of prompts in the config form.
const fieldCount = 3

// lineReader hands out at most one line per Read, so a prompt that buffers
// its input cannot swallow the answers meant for the prompts after it.
type lineReader struct {
	r       *bufio.Reader
	pending []byte
	count   int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.pending = line
		l.count++
	}

	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

func requireValue(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func parseDelay(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid delay: %w", err)
	}
	if d < 0 {
		return 0, errors.New("delay must not be negative")
	}
	return d, nil
}
