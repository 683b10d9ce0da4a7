package metric

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/jamesainslie/go-ner/span"
	"github.com/jamesainslie/go-ner/tagset"
)

func ints(xs ...int) []tagset.Tag { return tagset.FromInts(xs) }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		predicted     []tagset.Tag
		gold          []tagset.Tag
		mask          span.Mask
		wantPrecision float64
		wantRecall    float64
		wantF1        float64
	}{
		{
			name:          "exact reproduction",
			predicted:     ints(0, 1, 6),
			gold:          ints(0, 1, 6),
			mask:          span.Full(3),
			wantPrecision: 1,
			wantRecall:    1,
			wantF1:        1,
		},
		{
			// The predicted span (0,0) covers only position 0, where the
			// sequences agree; the gold span (0,1) does not match.
			name:          "truncated prediction",
			predicted:     ints(0, 6, 6),
			gold:          ints(0, 1, 6),
			mask:          span.Full(3),
			wantPrecision: 1,
			wantRecall:    0,
			wantF1:        0,
		},
		{
			name:          "over-long prediction",
			predicted:     ints(0, 1, 1),
			gold:          ints(0, 1, 6),
			mask:          span.Full(3),
			wantPrecision: 0,
			wantRecall:    1,
			wantF1:        0,
		},
		{
			name:          "all outside",
			predicted:     ints(6, 6, 6),
			gold:          ints(6, 6, 6),
			mask:          span.Full(3),
			wantPrecision: 0,
			wantRecall:    0,
			wantF1:        0,
		},
		{
			name:          "predictions only outside",
			predicted:     ints(6, 6, 6, 6),
			gold:          ints(2, 3, 6, 4),
			mask:          span.Full(4),
			wantPrecision: 0,
			wantRecall:    0,
			wantF1:        0,
		},
		{
			name:          "gold only outside",
			predicted:     ints(0, 6, 4, 5),
			gold:          ints(6, 6, 6, 6),
			mask:          span.Full(4),
			wantPrecision: 0,
			wantRecall:    0,
			wantF1:        0,
		},
		{
			name:          "partial",
			predicted:     ints(0, 1, 6, 2, 6, 4),
			gold:          ints(0, 1, 6, 2, 3, 6),
			mask:          span.Full(6),
			wantPrecision: 2.0 / 3.0,
			wantRecall:    1.0 / 2.0,
			wantF1:        4.0 / 7.0,
		},
		{
			name:          "padding ignored",
			predicted:     ints(4, 5, 6, 0, 0),
			gold:          ints(4, 5, 6, -1, -1),
			mask:          span.MaskFromGold(ints(4, 5, 6, -1, -1)),
			wantPrecision: 1,
			wantRecall:    1,
			wantF1:        1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.predicted, tt.gold, tt.mask)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if !approx(got.Precision, tt.wantPrecision) {
				t.Errorf("Precision = %v, want %v", got.Precision, tt.wantPrecision)
			}
			if !approx(got.Recall, tt.wantRecall) {
				t.Errorf("Recall = %v, want %v", got.Recall, tt.wantRecall)
			}
			if !approx(got.F1, tt.wantF1) {
				t.Errorf("F1 = %v, want %v", got.F1, tt.wantF1)
			}

			p, err := Precision(tt.predicted, tt.gold, tt.mask)
			if err != nil || !approx(p, got.Precision) {
				t.Errorf("Precision() = %v, %v; Score gave %v", p, err, got.Precision)
			}
			r, err := Recall(tt.predicted, tt.gold, tt.mask)
			if err != nil || !approx(r, got.Recall) {
				t.Errorf("Recall() = %v, %v; Score gave %v", r, err, got.Recall)
			}
		})
	}
}

func TestScore_Counts(t *testing.T) {
	m, err := Score(ints(0, 1, 6, 2, 6, 4), ints(0, 1, 6, 2, 3, 6), span.Full(6))
	if err != nil {
		t.Fatal(err)
	}
	if m.PredictedSpans != 3 || m.CorrectSpans != 2 {
		t.Errorf("predicted/correct = %d/%d, want 3/2", m.PredictedSpans, m.CorrectSpans)
	}
	if m.GoldSpans != 2 || m.RecoveredSpans != 1 {
		t.Errorf("gold/recovered = %d/%d, want 2/1", m.GoldSpans, m.RecoveredSpans)
	}

	per := m.ByCategory[tagset.Person]
	if per.Precision != 1 || per.Recall != 1 {
		t.Errorf("per = %+v", per)
	}
	// B-ORG alone agrees with gold at position 3, but gold continues.
	org := m.ByCategory[tagset.Organization]
	if org.Precision != 1 || org.Recall != 0 || org.F1 != 0 || org.GoldSpans != 1 {
		t.Errorf("org = %+v", org)
	}
	loc := m.ByCategory[tagset.Location]
	if loc.PredictedSpans != 1 || loc.GoldSpans != 0 {
		t.Errorf("loc = %+v", loc)
	}
}

func TestScore_LengthMismatch(t *testing.T) {
	_, err := Score(ints(0, 1), ints(0, 1, 6), span.Full(3))
	if !errors.Is(err, span.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	_, err = Precision(ints(0), ints(0), span.Full(2))
	if !errors.Is(err, span.ErrLengthMismatch) {
		t.Errorf("Precision: expected ErrLengthMismatch, got %v", err)
	}
	_, err = Recall(ints(0), ints(0, 1), span.Full(1))
	if !errors.Is(err, span.ErrLengthMismatch) {
		t.Errorf("Recall: expected ErrLengthMismatch, got %v", err)
	}
}

func TestF1(t *testing.T) {
	if F1(0, 0) != 0 {
		t.Error("F1(0,0) should be 0")
	}
	if F1(1, 0) != 0 {
		t.Error("F1(1,0) should be 0")
	}
	if !approx(F1(0.5, 1), 2.0/3.0) {
		t.Errorf("F1(0.5,1) = %v", F1(0.5, 1))
	}
}

func TestScore_RandomRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		n := 1 + rng.Intn(30)
		pred := make([]tagset.Tag, n)
		gold := make([]tagset.Tag, n)
		for j := range pred {
			pred[j] = tagset.Tag(rng.Intn(tagset.Size))
			gold[j] = tagset.Tag(rng.Intn(tagset.Size+1) - 1)
		}
		mask := span.MaskFromGold(gold)

		m, err := Score(pred, gold, mask)
		if err != nil {
			t.Fatal(err)
		}
		for name, v := range map[string]float64{"precision": m.Precision, "recall": m.Recall, "f1": m.F1} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("%s = %v out of range", name, v)
			}
		}

		// Gold compared with itself reproduces every gold span.
		self, err := Score(gold, gold, mask)
		if err != nil {
			t.Fatal(err)
		}
		if self.GoldSpans > 0 && (self.Precision != 1 || self.Recall != 1 || self.F1 != 1) {
			t.Fatalf("self score = %+v for %v", self, gold)
		}
	}
}
