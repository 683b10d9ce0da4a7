// Package report stores evaluation scores as baselines and detects
// regressions against them.
//
// Reports are protobuf messages (report.proto), so baselines written by
// older builds stay readable.
package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/jamesainslie/go-ner/metric"
	"github.com/jamesainslie/go-ner/tagset"
)

// ErrCorrupt indicates bytes that do not decode as a Report.
var ErrCorrupt = errors.New("report: corrupt data")

// FromMetrics builds a Report for model evaluated on dataset.
func FromMetrics(model, dataset string, m metric.Metrics) *Report {
	r := &Report{
		Model:          model,
		Dataset:        dataset,
		Precision:      m.Precision,
		Recall:         m.Recall,
		F1:             m.F1,
		PredictedSpans: int64(m.PredictedSpans),
		CorrectSpans:   int64(m.CorrectSpans),
		GoldSpans:      int64(m.GoldSpans),
		RecoveredSpans: int64(m.RecoveredSpans),
		CreatedUnix:    time.Now().Unix(),
	}
	for _, cat := range tagset.Categories {
		cm, ok := m.ByCategory[cat]
		if !ok {
			continue
		}
		r.Categories = append(r.Categories, &CategoryScore{
			Name:      cat.String(),
			Precision: cm.Precision,
			Recall:    cm.Recall,
			F1:        cm.F1,
		})
	}
	return r
}

// Created returns the creation time, or the zero time when unknown.
func (x *Report) Created() time.Time {
	if x.GetCreatedUnix() == 0 {
		return time.Time{}
	}
	return time.Unix(x.GetCreatedUnix(), 0).UTC()
}

// Decode parses an encoded Report.
func Decode(data []byte) (*Report, error) {
	var r Report
	if err := proto.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return &r, nil
}

// WriteFile stores r at path.
func WriteFile(path string, r *Report) error {
	data, err := proto.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadFile loads the report stored at path.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return Decode(data)
}

// Regression describes a score that dropped below its baseline.
type Regression struct {
	Metric   string
	Baseline float64
	Current  float64
}

func (r Regression) String() string {
	return fmt.Sprintf("%s dropped from %.4f to %.4f", r.Metric, r.Baseline, r.Current)
}

// Regressed compares current against baseline and returns every overall or
// per-category F1 that fell by more than tolerance.
func Regressed(baseline, current *Report, tolerance float64) []Regression {
	var out []Regression
	if baseline.GetF1()-current.GetF1() > tolerance {
		out = append(out, Regression{Metric: "f1", Baseline: baseline.GetF1(), Current: current.GetF1()})
	}

	now := make(map[string]float64, len(current.GetCategories()))
	for _, c := range current.GetCategories() {
		now[c.GetName()] = c.GetF1()
	}
	for _, c := range baseline.GetCategories() {
		f1, ok := now[c.GetName()]
		if !ok {
			continue
		}
		if c.GetF1()-f1 > tolerance {
			out = append(out, Regression{Metric: "f1/" + c.GetName(), Baseline: c.GetF1(), Current: f1})
		}
	}
	return out
}
