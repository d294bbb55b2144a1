package wizard

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelay(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr string
	}{
		{input: "500ms", want: 500 * time.Millisecond},
		{input: " 2s ", want: 2 * time.Second},
		{input: "0s", want: 0},
		{input: "soon", wantErr: "invalid delay"},
		{input: "-1s", wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDelay(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireValue(t *testing.T) {
	validate := requireValue("input file")

	assert.NoError(t, validate("consultatie.wav"))
	assert.EqualError(t, validate("   "), "input file is required")
}

func TestRunConfigWizard_ValidInput(t *testing.T) {
	in := strings.NewReader("visit.wav\nout.json\n1s\n")
	out := &bytes.Buffer{}

	answers, err := RunConfigWizard(in, out, ConfigAnswers{
		Input:  "consultatie.wav",
		Output: "lab1_hardcoded_predictions.json",
		Delay:  500 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, "visit.wav", answers.Input)
	assert.Equal(t, "out.json", answers.Output)
	assert.Equal(t, time.Second, answers.Delay)
}

func TestRunConfigWizard_UnexpectedEOF(t *testing.T) {
	in := strings.NewReader("visit.wav\n")
	out := &bytes.Buffer{}

	_, err := RunConfigWizard(in, out, ConfigAnswers{})
	assert.Error(t, err)
}

func TestRunConfigWizard_UnexpectedEOFWithDefaults(t *testing.T) {
	in := strings.NewReader("visit.wav\n")
	out := &bytes.Buffer{}

	_, err := RunConfigWizard(in, out, ConfigAnswers{
		Input:  "consultatie.wav",
		Output: "lab1_hardcoded_predictions.json",
		Delay:  500 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected end of input")
}

func TestRunConfigWizard_NoInput(t *testing.T) {
	_, err := RunConfigWizard(strings.NewReader(""), &bytes.Buffer{}, ConfigAnswers{})
	assert.Error(t, err)
}

func TestLineReader_OneLinePerRead(t *testing.T) {
	lr := newLineReader(strings.NewReader("visit.wav\nvisit.json\n1s"))
	buf := make([]byte, 64)

	n, err := lr.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "visit.wav\n", string(buf[:n]))

	n, err = lr.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "visit.json\n", string(buf[:n]))

	n, err = lr.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "1s", string(buf[:n]))

	_, err = lr.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, lr.count)
}

func TestLineReader_ShortBuffer(t *testing.T) {
	lr := newLineReader(strings.NewReader("visit.wav\nnext\n"))
	buf := make([]byte, 4)

	var got []byte
	for range 3 {
		n, err := lr.Read(buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}

	assert.Equal(t, "visit.wav\n", string(got))
	assert.Equal(t, 1, lr.count)
}
