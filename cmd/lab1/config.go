package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spboyer/lab1/internal/prediction"
	"github.com/spboyer/lab1/internal/projectconfig"
)

// loadProjectConfig reads .lab1.yaml (walking up from dir) and overlays
// LAB1_* variables. Variables set in the process environment win over the
// ones in dir/.env.
func loadProjectConfig(dir string) (*projectconfig.ProjectConfig, error) {
	if dir == "" {
		dir = "."
	}

	cfg, err := projectconfig.Load(dir)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		slog.Debug("Loaded project config", "path", cfg.Path)
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
		dotenv = nil
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	return cfg, nil
}

func newPredictor(cfg *projectconfig.ProjectConfig) (prediction.Predictor, error) {
	p, err := prediction.Create(prediction.Kind(cfg.Predictor.Kind), cfg.Predictor.Params)
	if err != nil {
		return nil, fmt.Errorf("creating predictor: %w", err)
	}
	return p, nil
}
