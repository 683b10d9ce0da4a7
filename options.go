package ner

import (
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jamesainslie/go-ner/inference"
)

// Option configures a Tagger or an evaluation.
type Option func(*config)

type config struct {
	poolSize   int
	workers    int
	io         inference.IO
	logger     *slog.Logger
	registerer prometheus.Registerer
}

func defaultConfig() config {
	return config{
		poolSize: runtime.NumCPU(),
		workers:  1,
		io:       inference.DefaultIO,
		logger:   slog.Default(),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithWorkers sets how many batches Evaluate runs through the predictor at
// once (default: 1).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithIONames overrides the model's input and output tensor names
// (default: "input_ids" and "emissions").
func WithIONames(input, output string) Option {
	return func(c *config) {
		if input != "" {
			c.io.Input = input
		}
		if output != "" {
			c.io.Output = output
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegisterer registers evaluation metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = r
	}
}
