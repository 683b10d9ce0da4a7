package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	ner "github.com/jamesainslie/go-ner"
	"github.com/jamesainslie/go-ner/metric"
	"github.com/jamesainslie/go-ner/span"
	"github.com/jamesainslie/go-ner/tagset"
)

func main() {
	mode := flag.String("mode", "score", "Mode: score or tag")
	pred := flag.String("pred", "", "Predicted tags, comma-separated indices or names (score mode)")
	gold := flag.String("gold", "", "Gold tags, comma-separated; -1 or PAD is ignored (score mode)")
	mask := flag.String("mask", "", "Optional 0/1 mask; defaults to gold >= 0 (score mode)")
	modelPath := flag.String("model", "", "Path to ONNX model file (tag mode)")

	flag.Parse()

	var err error
	switch *mode {
	case "score":
		err = runScore(*pred, *gold, *mask)
	case "tag":
		err = runTag(*modelPath, flag.Args())
	default:
		err = fmt.Errorf("unknown mode: %s", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScore(predArg, goldArg, maskArg string) error {
	if predArg == "" || goldArg == "" {
		fmt.Fprintln(os.Stderr, "Usage: ner-eval -pred TAGS -gold TAGS [-mask BITS]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	predicted, err := parseTags(predArg)
	if err != nil {
		return fmt.Errorf("pred: %w", err)
	}
	goldTags, err := parseTags(goldArg)
	if err != nil {
		return fmt.Errorf("gold: %w", err)
	}

	m := span.MaskFromGold(goldTags)
	if maskArg != "" {
		bits, err := parseInts(maskArg)
		if err != nil {
			return fmt.Errorf("mask: %w", err)
		}
		m = span.MaskFromInts(bits)
	}

	predSpans, err := span.Extract(predicted, m)
	if err != nil {
		return err
	}
	goldSpans, err := span.Extract(goldTags, m)
	if err != nil {
		return err
	}
	scores, err := metric.Score(predicted, goldTags, m)
	if err != nil {
		return err
	}

	fmt.Printf("Predicted spans: %s\n", predSpans)
	fmt.Printf("Gold spans:      %s\n", goldSpans)
	fmt.Printf("Precision: %.4f  Recall: %.4f  F1: %.4f\n", scores.Precision, scores.Recall, scores.F1)
	fmt.Printf("(predicted: %d, correct: %d, gold: %d, recovered: %d)\n",
		scores.PredictedSpans, scores.CorrectSpans, scores.GoldSpans, scores.RecoveredSpans)
	for _, cat := range tagset.Categories {
		c := scores.ByCategory[cat]
		fmt.Printf("  %s: P=%.4f R=%.4f F1=%.4f\n", cat, c.Precision, c.Recall, c.F1)
	}
	return nil
}

func runTag(modelPath string, args []string) error {
	if modelPath == "" || len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ner-eval -mode tag -model MODEL ID [ID...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ids := make([]int64, 0, len(args))
	for _, a := range args {
		for _, f := range strings.Split(a, ",") {
			if f = strings.TrimSpace(f); f == "" {
				continue
			}
			id, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return fmt.Errorf("token id %q: %w", f, err)
			}
			ids = append(ids, id)
		}
	}

	tagger, err := ner.New(modelPath, ner.WithPoolSize(1))
	if err != nil {
		return fmt.Errorf("creating tagger: %w", err)
	}
	defer func() { _ = tagger.Close() }() // Cleanup error ignored in CLI

	tags, err := tagger.Tag(context.Background(), ids)
	if err != nil {
		return err
	}
	spans, err := span.Extract(tags, span.Full(len(tags)))
	if err != nil {
		return err
	}

	fmt.Printf("Tokens (%d):\n", len(ids))
	for i, t := range tags {
		fmt.Printf("  %d: %d %s\n", i, ids[i], t)
	}
	fmt.Printf("Spans: %s\n", spans)
	return nil
}

// parseTags accepts indices and tag names mixed, e.g. "0,I-PER,6,-1".
func parseTags(s string) ([]tagset.Tag, error) {
	var tags []tagset.Tag
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if n, err := strconv.Atoi(f); err == nil {
			tags = append(tags, tagset.Tag(n))
			continue
		}
		t, err := tagset.Parse(f)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
