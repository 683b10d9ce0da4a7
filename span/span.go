// Package span decodes BIO tag sequences into entity spans.
//
// Decoding is a single left-to-right scan. A Begin tag opens a span that
// absorbs every directly following Inside tag of the same category; the scan
// then resumes after the last absorbed position. Outside tags, masked
// positions, orphan Inside tags and indices outside the vocabulary never
// open a span.
package span

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-ner/tagset"
)

// ErrLengthMismatch indicates sequences that must be parallel have different
// lengths.
var ErrLengthMismatch = errors.New("span: sequence length mismatch")

// Span is one entity mention. It covers positions Start through
// Start+Length inclusive, where Length counts the trailing Inside tags.
type Span struct {
	Category tagset.Category
	Start    int
	Length   int
}

// End returns the last position covered by the span.
func (s Span) End() int { return s.Start + s.Length }

func (s Span) String() string {
	return fmt.Sprintf("(%d,%d)", s.Start, s.Length)
}

// Mask marks the positions that take part in decoding. False positions are
// padding or ignored labels.
type Mask []bool

// MaskFromGold marks every position whose gold index is non-negative.
func MaskFromGold(gold []tagset.Tag) Mask {
	m := make(Mask, len(gold))
	for i, g := range gold {
		m[i] = g >= 0
	}
	return m
}

// MaskFromInts converts a 0/1 mask. Any non-zero value is valid.
func MaskFromInts(xs []int) Mask {
	m := make(Mask, len(xs))
	for i, x := range xs {
		m[i] = x != 0
	}
	return m
}

// Full returns a mask of n valid positions.
func Full(n int) Mask {
	m := make(Mask, n)
	for i := range m {
		m[i] = true
	}
	return m
}

// Step decodes the position at idx. It returns the span starting there, if
// any, and the cursor at which the scan continues.
//
// The continuation lookahead is bounded by len(tags) and ignores the mask:
// only tag equality extends a span. A Begin at the final position therefore
// yields a span of length zero.
func Step(tags []tagset.Tag, mask Mask, idx int) (Span, bool, int) {
	if !mask[idx] {
		return Span{}, false, idx + 1
	}
	st := tagset.Decode(tags[idx])
	if st.Kind != tagset.Begin {
		return Span{}, false, idx + 1
	}

	length := 0
	for seek := idx + 1; seek < len(tags) && st.Continues(tags[seek]); seek++ {
		length++
	}
	return Span{Category: st.Category, Start: idx, Length: length}, true, idx + length + 1
}

// All returns the spans of tags in scan order. The sequence may be ranged
// over any number of times.
//
// All panics if tags and mask differ in length; use Extract to get an error
// instead.
func All(tags []tagset.Tag, mask Mask) iter.Seq[Span] {
	if len(tags) != len(mask) {
		panic(fmt.Sprintf("span: %d tags with %d mask bits", len(tags), len(mask)))
	}
	return func(yield func(Span) bool) {
		for idx := 0; idx < len(tags); {
			s, ok, next := Step(tags, mask, idx)
			if ok && !yield(s) {
				return
			}
			idx = next
		}
	}
}

// Extract decodes tags into a Collection.
func Extract(tags []tagset.Tag, mask Mask) (Collection, error) {
	if len(tags) != len(mask) {
		return Collection{}, fmt.Errorf("%w: %d tags, %d mask bits", ErrLengthMismatch, len(tags), len(mask))
	}
	var c Collection
	for s := range All(tags, mask) {
		c.Add(s)
	}
	return c, nil
}

// Collection groups spans by category, each group in scan order.
// The zero value is an empty collection.
type Collection struct {
	spans [len(tagset.Categories)][]Span
}

// Add appends s to its category.
func (c *Collection) Add(s Span) {
	c.spans[s.Category] = append(c.spans[s.Category], s)
}

// Spans returns the spans of one category.
func (c Collection) Spans(cat tagset.Category) []Span {
	return c.spans[cat]
}

// Len returns the number of spans across all categories.
func (c Collection) Len() int {
	return lo.SumBy(c.spans[:], func(s []Span) int { return len(s) })
}

// Each calls fn for every span, category by category.
func (c Collection) Each(fn func(Span)) {
	for _, group := range c.spans {
		for _, s := range group {
			fn(s)
		}
	}
}

// String formats the collection as {"per": [(0,1)], "org": [], "loc": []}.
func (c Collection) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, cat := range tagset.Categories {
		if i > 0 {
			b.WriteString(", ")
		}
		parts := lo.Map(c.spans[cat], func(s Span, _ int) string { return s.String() })
		fmt.Fprintf(&b, "%q: [%s]", cat.String(), strings.Join(parts, ", "))
	}
	b.WriteByte('}')
	return b.String()
}
