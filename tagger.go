package ner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jamesainslie/go-ner/inference"
	"github.com/jamesainslie/go-ner/tagset"
)

// Tagger runs an exported tagging model with ONNX Runtime. It is safe for
// concurrent use.
type Tagger struct {
	pool   *inference.Pool
	logger *slog.Logger
}

// New creates a Tagger for the model at modelPath.
func New(modelPath string, opts ...Option) (*Tagger, error) {
	cfg := applyOptions(opts)

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	pool, err := inference.NewPool(modelPath, cfg.io, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	cfg.logger.Debug("tagger ready", "model", modelPath, "sessions", pool.Size())

	return &Tagger{
		pool:   pool,
		logger: cfg.logger,
	}, nil
}

// Predict implements Predictor.
func (t *Tagger) Predict(ctx context.Context, inputIDs []int64, batchSize, seqLen int) ([][]float32, error) {
	raw, err := t.pool.Infer(ctx, inputIDs, batchSize, seqLen)
	if err != nil {
		return nil, err
	}
	return Reshape(raw, batchSize*seqLen)
}

// Tag returns the arg-max tag of every token of one sentence.
func (t *Tagger) Tag(ctx context.Context, inputIDs []int64) ([]tagset.Tag, error) {
	if len(inputIDs) == 0 {
		return nil, nil
	}
	scores, err := t.Predict(ctx, inputIDs, 1, len(inputIDs))
	if err != nil {
		return nil, err
	}
	return Argmax(scores), nil
}

// Close releases all resources.
func (t *Tagger) Close() error {
	if t.pool == nil {
		return nil
	}
	return t.pool.Close()
}

// Reshape splits flat model output into rows of tagset.Size scores.
func Reshape(raw []float32, rows int) ([][]float32, error) {
	if len(raw) != rows*tagset.Size {
		return nil, fmt.Errorf("%w: %d values for %d tokens", ErrScoreShape, len(raw), rows)
	}
	scores := make([][]float32, rows)
	for i := range scores {
		scores[i] = raw[i*tagset.Size : (i+1)*tagset.Size : (i+1)*tagset.Size]
	}
	return scores, nil
}
