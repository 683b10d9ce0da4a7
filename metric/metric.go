// Package metric scores predicted BIO tag sequences against gold sequences.
//
// Scoring is exact-match and deliberately asymmetric:
//
//   - precision walks the spans decoded from the predictions,
//   - recall walks the spans decoded from the gold labels,
//
// and in both cases a span counts only when the predicted and gold tags are
// identical over the span's whole range. An empty span set scores 0, and F1
// is 0 when both precision and recall are 0.
package metric

import (
	"fmt"
	"slices"

	"github.com/jamesainslie/go-ner/span"
	"github.com/jamesainslie/go-ner/tagset"
)

// Metrics holds evaluation results.
type Metrics struct {
	PredictedSpans int
	CorrectSpans   int // predicted spans that match gold exactly
	GoldSpans      int
	RecoveredSpans int // gold spans reproduced exactly by the predictions
	Precision      float64
	Recall         float64
	F1             float64

	// ByCategory applies the same rules to each category alone. It is nil on
	// the per-category entries themselves.
	ByCategory map[tagset.Category]Metrics
}

// Score extracts spans from predicted and gold and computes all metrics.
func Score(predicted, gold []tagset.Tag, mask span.Mask) (Metrics, error) {
	if err := checkLengths(predicted, gold, mask); err != nil {
		return Metrics{}, err
	}

	predSpans, err := span.Extract(predicted, mask)
	if err != nil {
		return Metrics{}, err
	}
	goldSpans, err := span.Extract(gold, mask)
	if err != nil {
		return Metrics{}, err
	}

	var m Metrics
	m.ByCategory = make(map[tagset.Category]Metrics, len(tagset.Categories))
	for _, cat := range tagset.Categories {
		var c Metrics
		c.PredictedSpans, c.CorrectSpans = tally(predSpans.Spans(cat), predicted, gold)
		c.GoldSpans, c.RecoveredSpans = tally(goldSpans.Spans(cat), predicted, gold)
		c.finish()
		m.ByCategory[cat] = c

		m.PredictedSpans += c.PredictedSpans
		m.CorrectSpans += c.CorrectSpans
		m.GoldSpans += c.GoldSpans
		m.RecoveredSpans += c.RecoveredSpans
	}
	m.finish()
	return m, nil
}

// Precision returns the fraction of predicted spans that match gold exactly.
func Precision(predicted, gold []tagset.Tag, mask span.Mask) (float64, error) {
	if err := checkLengths(predicted, gold, mask); err != nil {
		return 0, err
	}
	spans, err := span.Extract(predicted, mask)
	if err != nil {
		return 0, err
	}
	return ratio(countMatches(spans, predicted, gold)), nil
}

// Recall returns the fraction of gold spans the predictions reproduce exactly.
func Recall(predicted, gold []tagset.Tag, mask span.Mask) (float64, error) {
	if err := checkLengths(predicted, gold, mask); err != nil {
		return 0, err
	}
	spans, err := span.Extract(gold, mask)
	if err != nil {
		return 0, err
	}
	return ratio(countMatches(spans, predicted, gold)), nil
}

// ComputeF1 scores predicted against gold and returns only F1.
func ComputeF1(predicted, gold []tagset.Tag, mask span.Mask) (float64, error) {
	m, err := Score(predicted, gold, mask)
	if err != nil {
		return 0, err
	}
	return m.F1, nil
}

// F1 is the harmonic mean of p and r, or 0 when both are 0.
func F1(p, r float64) float64 {
	if p == 0 && r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (m *Metrics) finish() {
	m.Precision = ratio(m.PredictedSpans, m.CorrectSpans)
	m.Recall = ratio(m.GoldSpans, m.RecoveredSpans)
	m.F1 = F1(m.Precision, m.Recall)
}

// matches reports whether predicted and gold agree over the whole of s.
func matches(s span.Span, predicted, gold []tagset.Tag) bool {
	from, to := s.Start, s.End()+1
	return slices.Equal(predicted[from:to], gold[from:to])
}

func tally(spans []span.Span, predicted, gold []tagset.Tag) (total, hits int) {
	for _, s := range spans {
		if matches(s, predicted, gold) {
			hits++
		}
	}
	return len(spans), hits
}

func countMatches(c span.Collection, predicted, gold []tagset.Tag) (total, hits int) {
	c.Each(func(s span.Span) {
		total++
		if matches(s, predicted, gold) {
			hits++
		}
	})
	return total, hits
}

func ratio(total, hits int) float64 {
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func checkLengths(predicted, gold []tagset.Tag, mask span.Mask) error {
	if len(predicted) != len(gold) || len(gold) != len(mask) {
		return fmt.Errorf("%w: %d predicted, %d gold, %d mask",
			span.ErrLengthMismatch, len(predicted), len(gold), len(mask))
	}
	return nil
}
