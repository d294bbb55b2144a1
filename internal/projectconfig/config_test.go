package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "consultatie.wav", cfg.Input)
	assert.Equal(t, "lab1_hardcoded_predictions.json", cfg.Output)
	assert.Equal(t, "hardcoded", cfg.Predictor.Kind)
	assert.Nil(t, cfg.Predictor.Params)
	assert.Empty(t, cfg.Report.Lab)
	assert.Empty(t, cfg.Report.Description)
	assert.Empty(t, cfg.Path)
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
input: interview.wav
output: out/report.json
predictor:
  kind: hardcoded
  config:
    delay: 50ms
    patterns:
      - match: interview
        transcript: "Bună ziua."
report:
  lab: Lab 2
  description: Custom description
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "interview.wav", cfg.Input)
	assert.Equal(t, "out/report.json", cfg.Output)
	assert.Equal(t, "hardcoded", cfg.Predictor.Kind)
	assert.Equal(t, "50ms", cfg.Predictor.Params["delay"])
	require.IsType(t, []any{}, cfg.Predictor.Params["patterns"])
	pats := cfg.Predictor.Params["patterns"].([]any)
	require.Len(t, pats, 1)
	assert.Equal(t, map[string]any{"match": "interview", "transcript": "Bună ziua."}, pats[0])
	assert.Equal(t, "Lab 2", cfg.Report.Lab)
	assert.Equal(t, "Custom description", cfg.Report.Description)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Path)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "output: elsewhere.json\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, DefaultInput, cfg.Input)
	assert.Equal(t, "elsewhere.json", cfg.Output)
	assert.Equal(t, DefaultPredictor, cfg.Predictor.Kind)
}

func TestLoad_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "input: parent.wav\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "parent.wav", cfg.Input)
	assert.Equal(t, filepath.Join(root, FileName), cfg.Path)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "input: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestApplyEnv(t *testing.T) {
	cfg := New()

	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvInput:     " env.wav ",
		EnvOutput:    "env.json",
		EnvPredictor: "hardcoded",
		EnvDelay:     "1s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env.wav", cfg.Input)
	assert.Equal(t, "env.json", cfg.Output)
	assert.Equal(t, "hardcoded", cfg.Predictor.Kind)
	assert.Equal(t, "1s", cfg.Predictor.Params["delay"])
}

func TestApplyEnv_EmptyValuesIgnored(t *testing.T) {
	cfg := New()

	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{EnvInput: "", EnvOutput: "  "})))
	assert.Equal(t, New(), cfg)
}

func TestApplyEnv_BadDelay(t *testing.T) {
	cfg := New()

	err := cfg.ApplyEnv(envMap(map[string]string{EnvDelay: "half a second"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDelay)
}

func TestSetDelay_DoesNotMutateLoadedParams(t *testing.T) {
	shared := map[string]any{"delay": "5s"}
	cfg := New()
	cfg.Predictor.Params = shared

	cfg.SetDelay(250 * time.Millisecond)

	assert.Equal(t, "250ms", cfg.Predictor.Params["delay"])
	assert.Equal(t, "5s", shared["delay"])
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := New()
	cfg.SetDelay(time.Second)

	data, err := cfg.Marshal()
	require.NoError(t, err)

	dir := t.TempDir()
	writeFile(t, dir, FileName, string(data))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Input, loaded.Input)
	assert.Equal(t, cfg.Output, loaded.Output)
	assert.Equal(t, "1s", loaded.Predictor.Params["delay"])
	assert.NotContains(t, string(data), "path")
}
