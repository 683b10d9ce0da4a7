package ner

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-ner/internal/telemetry"
	"github.com/jamesainslie/go-ner/metric"
	"github.com/jamesainslie/go-ner/span"
	"github.com/jamesainslie/go-ner/tagset"
)

// Batch is one batch of encoded sentences. Rows are padded to a common
// length; Labels uses a negative value for positions to ignore.
type Batch struct {
	InputIDs [][]int64
	Labels   [][]int
}

// shape returns the row count and common row length.
func (b Batch) shape() (rows, seqLen int, err error) {
	if len(b.InputIDs) != len(b.Labels) {
		return 0, 0, fmt.Errorf("%w: %d id rows, %d label rows", ErrBatchShape, len(b.InputIDs), len(b.Labels))
	}
	if len(b.InputIDs) == 0 {
		return 0, 0, nil
	}
	seqLen = len(b.InputIDs[0])
	for i := range b.InputIDs {
		if len(b.InputIDs[i]) != seqLen || len(b.Labels[i]) != seqLen {
			return 0, 0, fmt.Errorf("%w: row %d has %d ids and %d labels, want %d",
				ErrBatchShape, i, len(b.InputIDs[i]), len(b.Labels[i]), seqLen)
		}
	}
	return len(b.InputIDs), seqLen, nil
}

// Predictor produces one score vector per token for a batch of token ids
// laid out row by row.
type Predictor interface {
	Predict(ctx context.Context, inputIDs []int64, batchSize, seqLen int) ([][]float32, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, inputIDs []int64, batchSize, seqLen int) ([][]float32, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, inputIDs []int64, batchSize, seqLen int) ([][]float32, error) {
	return f(ctx, inputIDs, batchSize, seqLen)
}

// Argmax returns the index of the highest score of each row. Ties go to the
// lower index; an empty row yields O.
func Argmax(scores [][]float32) []tagset.Tag {
	tags := make([]tagset.Tag, len(scores))
	for i, row := range scores {
		if len(row) == 0 {
			tags[i] = tagset.O
			continue
		}
		best := 0
		for j := 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		tags[i] = tagset.Tag(best)
	}
	return tags
}

// Result is the outcome of Evaluate over a whole dataset.
type Result struct {
	Metrics metric.Metrics

	// Flattened sequences in batch order.
	Predictions []tagset.Tag
	Gold        []tagset.Tag
	Mask        span.Mask

	Batches int
	Elapsed time.Duration
}

// F1 returns the score used for checkpoint selection.
func (r Result) F1() float64 { return r.Metrics.F1 }

// Evaluate runs p over every batch, takes the arg-max tag of each token,
// concatenates predictions and gold labels in batch order, masks positions
// whose gold label is negative and scores the flattened sequences once.
func Evaluate(ctx context.Context, p Predictor, batches []Batch, opts ...Option) (Result, error) {
	cfg := applyOptions(opts)
	logger := telemetry.WithComponent(cfg.logger, "evaluate")
	collectors := telemetry.NewCollectors(cfg.registerer)
	start := time.Now()

	predicted := make([][]tagset.Tag, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, b := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, seqLen, err := b.shape()
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			if rows == 0 || seqLen == 0 {
				return nil
			}

			ids := make([]int64, 0, rows*seqLen)
			for _, row := range b.InputIDs {
				ids = append(ids, row...)
			}

			t0 := time.Now()
			scores, err := p.Predict(gctx, ids, rows, seqLen)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			collectors.ObserveBatch(time.Since(t0))

			if len(scores) != len(ids) {
				return fmt.Errorf("batch %d: %w: %d score rows for %d tokens", i, ErrScoreShape, len(scores), len(ids))
			}
			for j, row := range scores {
				if len(row) != tagset.Size {
					return fmt.Errorf("batch %d: %w: token %d has %d scores", i, ErrScoreShape, j, len(row))
				}
			}

			predicted[i] = Argmax(scores)
			logger.Debug("batch tagged", "batch", i, "rows", rows, "seq_len", seqLen)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	predictions := slices.Concat(predicted...)
	gold := tagset.FromInts(lo.Flatten(lo.FlatMap(batches, func(b Batch, _ int) [][]int {
		return b.Labels
	})))
	mask := span.MaskFromGold(gold)

	m, err := metric.Score(predictions, gold, mask)
	if err != nil {
		return Result{}, err
	}
	collectors.ObserveMetrics(m)

	res := Result{
		Metrics:     m,
		Predictions: predictions,
		Gold:        gold,
		Mask:        mask,
		Batches:     len(batches),
		Elapsed:     time.Since(start),
	}

	logger.Info("evaluation complete",
		"batches", res.Batches,
		"tokens", len(gold),
		"predicted_spans", m.PredictedSpans,
		"gold_spans", m.GoldSpans,
		"precision", m.Precision,
		"recall", m.Recall,
		"f1", m.F1,
		"elapsed", res.Elapsed,
	)

	return res, nil
}
