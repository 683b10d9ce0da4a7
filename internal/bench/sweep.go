package bench

import (
	"context"
	"errors"
	"fmt"
	"sort"

	ner "github.com/jamesainslie/go-ner"
)

// Model is a predictor that holds resources.
type Model interface {
	ner.Predictor
	Close() error
}

// Opener loads the model stored at path.
type Opener func(path string) (Model, error)

// Candidate holds the evaluation of one checkpoint.
type Candidate struct {
	Path   string
	Result ner.Result
	Best   bool // new best when it was observed
}

// TaggerOpener opens checkpoints as ONNX taggers configured by opts.
func TaggerOpener(opts ...ner.Option) Opener {
	return func(path string) (Model, error) {
		t, err := ner.New(path, opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// Compare evaluates every checkpoint over the same batches in order, feeds
// each F1 to tracker and returns the candidates sorted by F1 descending.
// A nil tracker disables promotion.
func Compare(ctx context.Context, paths []string, open Opener, batches []ner.Batch, tracker *Tracker, opts ...ner.Option) ([]Candidate, error) {
	var results []Candidate

	for _, path := range paths {
		m, err := open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}

		res, err := ner.Evaluate(ctx, m, batches, opts...)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("evaluating %s: %w", path, err), m.Close())
		}
		if err := m.Close(); err != nil {
			return nil, fmt.Errorf("closing %s: %w", path, err)
		}

		c := Candidate{Path: path, Result: res}
		if tracker != nil {
			c.Best, err = tracker.Observe(path, res.F1())
			if err != nil {
				return nil, err
			}
		}
		results = append(results, c)
	}

	// Sort by F1 descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.F1() > results[j].Result.F1()
	})

	return results, nil
}
