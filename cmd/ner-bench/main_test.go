package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	ner "github.com/jamesainslie/go-ner"
	"github.com/jamesainslie/go-ner/internal/config"
)

func TestOverrides_Apply(t *testing.T) {
	base := func() *config.Config {
		cfg := config.Default()
		cfg.Model.Path = "cfg.onnx"
		cfg.Model.Checkpoints = []string{"cfg-a.onnx"}
		cfg.Data.Path = "cfg.jsonl"
		cfg.Eval.Baseline = "cfg.pb"
		return cfg
	}

	tests := []struct {
		name            string
		flags           overrides
		wantModel       string
		wantData        string
		wantOutput      string
		wantBaseline    string
		wantCheckpoints []string
	}{
		{
			name:            "empty flags keep config",
			wantModel:       "cfg.onnx",
			wantData:        "cfg.jsonl",
			wantOutput:      "output",
			wantBaseline:    "cfg.pb",
			wantCheckpoints: []string{"cfg-a.onnx"},
		},
		{
			name:            "flags win",
			flags:           overrides{model: "flag.onnx", data: "flag.jsonl", output: "out", baseline: "flag.pb"},
			wantModel:       "flag.onnx",
			wantData:        "flag.jsonl",
			wantOutput:      "out",
			wantBaseline:    "flag.pb",
			wantCheckpoints: []string{"cfg-a.onnx"},
		},
		{
			name:            "models list is trimmed",
			flags:           overrides{models: "a.onnx, b.onnx ,"},
			wantModel:       "cfg.onnx",
			wantData:        "cfg.jsonl",
			wantOutput:      "output",
			wantBaseline:    "cfg.pb",
			wantCheckpoints: []string{"a.onnx", "b.onnx"},
		},
		{
			name:            "blank models list ignored",
			flags:           overrides{models: " , "},
			wantModel:       "cfg.onnx",
			wantData:        "cfg.jsonl",
			wantOutput:      "output",
			wantBaseline:    "cfg.pb",
			wantCheckpoints: []string{"cfg-a.onnx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.flags.apply(cfg)

			if cfg.Model.Path != tt.wantModel {
				t.Errorf("Model.Path = %q, want %q", cfg.Model.Path, tt.wantModel)
			}
			if cfg.Data.Path != tt.wantData {
				t.Errorf("Data.Path = %q, want %q", cfg.Data.Path, tt.wantData)
			}
			if cfg.Eval.OutputDir != tt.wantOutput {
				t.Errorf("Eval.OutputDir = %q, want %q", cfg.Eval.OutputDir, tt.wantOutput)
			}
			if cfg.Eval.Baseline != tt.wantBaseline {
				t.Errorf("Eval.Baseline = %q, want %q", cfg.Eval.Baseline, tt.wantBaseline)
			}
			if !slices.Equal(cfg.Model.Checkpoints, tt.wantCheckpoints) {
				t.Errorf("Model.Checkpoints = %q, want %q", cfg.Model.Checkpoints, tt.wantCheckpoints)
			}
		})
	}
}

func TestCheckpointPaths(t *testing.T) {
	tests := []struct {
		name        string
		model       string
		checkpoints []string
		want        []string
	}{
		{"checkpoints preferred", "m.onnx", []string{"a.onnx", "b.onnx"}, []string{"a.onnx", "b.onnx"}},
		{"falls back to model", "m.onnx", nil, []string{"m.onnx"}},
		{"nothing configured", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Model.Path = tt.model
			cfg.Model.Checkpoints = tt.checkpoints
			if got := checkpointPaths(cfg); !slices.Equal(got, tt.want) {
				t.Errorf("checkpointPaths() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_MissingModel(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "dev.jsonl")
	if err := os.WriteFile(data, []byte(`{"id": "a", "input_ids": [1, 2], "labels": ["B-PER", "O"]}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Model.Path = filepath.Join(dir, "missing.onnx")
	cfg.Data.Path = data
	cfg.Eval.OutputDir = dir

	err := run(context.Background(), cfg, "")
	if !errors.Is(err, ner.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestRun_MissingData(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Path = "m.onnx"
	cfg.Data.Path = filepath.Join(t.TempDir(), "none.jsonl")

	if err := run(context.Background(), cfg, ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestLoadData_Dir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(`[{"input_ids": [1], "labels": [6]}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := loadData(dir)
	if err != nil || len(got) != 1 {
		t.Errorf("loadData() = %v, %v", got, err)
	}
}
