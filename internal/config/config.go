// Package config loads evaluation settings from defaults, an optional .env
// file, an optional YAML file and NER_* environment variables, in that
// order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the top-level configuration.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Data    DataConfig    `yaml:"data"`
	Eval    EvalConfig    `yaml:"eval"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ModelConfig selects the model and how it is run.
type ModelConfig struct {
	Path        string   `yaml:"path"`
	Checkpoints []string `yaml:"checkpoints"`
	PoolSize    int      `yaml:"poolSize"`
	InputName   string   `yaml:"inputName"`
	OutputName  string   `yaml:"outputName"`
}

// DataConfig locates the evaluation dataset and controls batching.
type DataConfig struct {
	Path      string `yaml:"path"`
	BatchSize int    `yaml:"batchSize"`
	MaxLength int    `yaml:"maxLength"`
}

// EvalConfig controls the evaluation run.
type EvalConfig struct {
	Workers   int     `yaml:"workers"`
	OutputDir string  `yaml:"outputDir"`
	Baseline  string  `yaml:"baseline"`
	Tolerance float64 `yaml:"tolerance"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			InputName:  "input_ids",
			OutputName: "emissions",
		},
		Data: DataConfig{
			BatchSize: 32,
		},
		Eval: EvalConfig{
			Workers:   1,
			OutputDir: "output",
			Tolerance: 0.005,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config. envFile names a dotenv file whose variables are
// added to the environment without replacing existing ones; when empty,
// ./.env is used if present. path names an optional YAML file.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads NER_* environment variables and overrides the
// corresponding fields.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("NER_MODEL"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("NER_CHECKPOINTS"); v != "" {
		cfg.Model.Checkpoints = SplitList(v)
	}
	if v := os.Getenv("NER_DATA"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("NER_OUTPUT_DIR"); v != "" {
		cfg.Eval.OutputDir = v
	}
	if v := os.Getenv("NER_BASELINE"); v != "" {
		cfg.Eval.Baseline = v
	}
	if v := os.Getenv("NER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("NER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("NER_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"NER_POOL_SIZE", &cfg.Model.PoolSize},
		{"NER_BATCH_SIZE", &cfg.Data.BatchSize},
		{"NER_MAX_LENGTH", &cfg.Data.MaxLength},
		{"NER_WORKERS", &cfg.Eval.Workers},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, e.key, v)
		}
		*e.dst = n
	}

	if v := os.Getenv("NER_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: NER_TOLERANCE=%q is not a number", ErrInvalid, v)
		}
		cfg.Eval.Tolerance = f
	}
	return nil
}

// SplitList splits a comma-separated list, trimming blanks and dropping
// empty entries.
func SplitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks value ranges. Paths are checked by the commands that use
// them.
func (c *Config) Validate() error {
	var errs []error
	if c.Data.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: data.batchSize must be positive, got %d", ErrInvalid, c.Data.BatchSize))
	}
	if c.Data.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("%w: data.maxLength must not be negative, got %d", ErrInvalid, c.Data.MaxLength))
	}
	if c.Model.PoolSize < 0 {
		errs = append(errs, fmt.Errorf("%w: model.poolSize must not be negative, got %d", ErrInvalid, c.Model.PoolSize))
	}
	if c.Eval.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: eval.workers must be positive, got %d", ErrInvalid, c.Eval.Workers))
	}
	if c.Eval.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("%w: eval.tolerance must not be negative, got %v", ErrInvalid, c.Eval.Tolerance))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format must be json or text, got %q", ErrInvalid, c.Logging.Format))
	}
	return errors.Join(errs...)
}
