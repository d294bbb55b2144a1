// Package projectconfig provides the ProjectConfig struct and loader for
// .lab1.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up from the working directory.
const FileName = ".lab1.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultInput     = "consultatie.wav"
	DefaultOutput    = "lab1_hardcoded_predictions.json"
	DefaultPredictor = "hardcoded"
)

// Environment variables that overlay the file configuration.
const (
	EnvInput     = "LAB1_INPUT"
	EnvOutput    = "LAB1_OUTPUT"
	EnvPredictor = "LAB1_PREDICTOR"
	EnvDelay     = "LAB1_DELAY"
)

// PredictorConfig selects and configures the predictor. Params is passed
// through to prediction.Create untouched.
type PredictorConfig struct {
	Kind   string         `yaml:"kind,omitempty"`
	Params map[string]any `yaml:"config,omitempty"`
}

// ReportConfig holds the static report metadata.
type ReportConfig struct {
	Lab         string `yaml:"lab,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .lab1.yaml.
type ProjectConfig struct {
	Input     string          `yaml:"input,omitempty"`
	Output    string          `yaml:"output,omitempty"`
	Predictor PredictorConfig `yaml:"predictor,omitempty"`
	Report    ReportConfig    `yaml:"report,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
// Report metadata is left empty so models.NewReportDocument applies its own
// defaults.
func New() *ProjectConfig {
	return &ProjectConfig{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Predictor: PredictorConfig{
			Kind: DefaultPredictor,
		},
	}
}

// Load finds .lab1.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for .lab1.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Input != "" {
		dst.Input = src.Input
	}
	if src.Output != "" {
		dst.Output = src.Output
	}

	if src.Predictor.Kind != "" {
		dst.Predictor.Kind = src.Predictor.Kind
	}
	if src.Predictor.Params != nil {
		dst.Predictor.Params = maps.Clone(src.Predictor.Params)
	}

	if src.Report.Lab != "" {
		dst.Report.Lab = src.Report.Lab
	}
	if src.Report.Description != "" {
		dst.Report.Description = src.Report.Description
	}
}

// ApplyEnv overlays LAB1_* variables onto cfg. lookup is normally
// os.LookupEnv. Empty values are ignored.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if v := get(EnvInput); v != "" {
		c.Input = v
	}
	if v := get(EnvOutput); v != "" {
		c.Output = v
	}
	if v := get(EnvPredictor); v != "" {
		c.Predictor.Kind = v
	}
	if v := get(EnvDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDelay, err)
		}
		c.SetDelay(d)
	}
	return nil
}

// SetDelay overrides the predictor's simulated delay.
func (c *ProjectConfig) SetDelay(d time.Duration) {
	params := maps.Clone(c.Predictor.Params)
	if params == nil {
		params = map[string]any{}
	}
	params["delay"] = d.String()
	c.Predictor.Params = params
}

// Marshal renders cfg as YAML, for `lab1 init`.
func (c *ProjectConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
