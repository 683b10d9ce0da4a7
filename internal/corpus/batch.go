package corpus

import (
	"github.com/samber/lo"

	ner "github.com/jamesainslie/go-ner"
	"github.com/jamesainslie/go-ner/span"
	"github.com/jamesainslie/go-ner/tagset"
)

// Padding written into short rows.
const (
	PadID    int64 = 0
	PadLabel       = int(tagset.Pad)
)

// Batches groups sentences into batches of batchSize in order. With
// maxLen > 0 every row is padded or truncated to maxLen; otherwise rows are
// padded to the longest sentence of their batch.
func Batches(sentences []Sentence, batchSize, maxLen int) []ner.Batch {
	if batchSize <= 0 {
		batchSize = 1
	}

	chunks := lo.Chunk(sentences, batchSize)
	batches := make([]ner.Batch, 0, len(chunks))
	for _, chunk := range chunks {
		width := maxLen
		if width <= 0 {
			width = lo.Max(lo.Map(chunk, func(s Sentence, _ int) int { return len(s.InputIDs) }))
		}

		var b ner.Batch
		for _, s := range chunk {
			ids := make([]int64, width)
			labels := make([]int, width)
			for i := range width {
				ids[i], labels[i] = PadID, PadLabel
			}
			n := copy(ids, s.InputIDs)
			copy(labels[:n], s.Labels)
			b.InputIDs = append(b.InputIDs, ids)
			b.Labels = append(b.Labels, labels)
		}
		batches = append(batches, b)
	}
	return batches
}

// Stats summarizes a dataset.
type Stats struct {
	Sentences int
	Tokens    int // positions with a non-negative label
	Entities  map[tagset.Category]int
}

// Describe counts sentences, scored tokens and gold entities.
func Describe(sentences []Sentence) Stats {
	st := Stats{
		Sentences: len(sentences),
		Entities:  make(map[tagset.Category]int, len(tagset.Categories)),
	}
	for _, s := range sentences {
		gold := tagset.FromInts(s.Labels)
		for g := range span.All(gold, span.MaskFromGold(gold)) {
			st.Entities[g.Category]++
		}
		st.Tokens += lo.CountBy(s.Labels, func(l int) bool { return l >= 0 })
	}
	return st
}
