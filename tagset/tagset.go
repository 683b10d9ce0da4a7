// Package tagset defines the closed BIO tag vocabulary used by the tagger.
//
// The vocabulary has seven tags over three entity categories:
//
//	B-PER=0  I-PER=1  B-ORG=2  I-ORG=3  B-LOC=4  I-LOC=5  O=6
//
// Negative indices are reserved as the padding sentinel of gold sequences and
// are never part of the vocabulary.
package tagset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTag is returned by Parse for names outside the vocabulary.
var ErrUnknownTag = errors.New("tagset: unknown tag")

// Tag is a tag index produced by the model or read from gold annotations.
type Tag int

// The fixed tag vocabulary.
const (
	BPer Tag = iota
	IPer
	BOrg
	IOrg
	BLoc
	ILoc
	O
)

// Size is the number of tags in the vocabulary.
const Size = 7

// Pad is the conventional ignore value in gold sequences.
const Pad Tag = -1

var names = [Size]string{
	BPer: "B-PER",
	IPer: "I-PER",
	BOrg: "B-ORG",
	IOrg: "I-ORG",
	BLoc: "B-LOC",
	ILoc: "I-LOC",
	O:    "O",
}

// Valid reports whether t belongs to the vocabulary.
func (t Tag) Valid() bool {
	return t >= 0 && t < Size
}

// String returns the tag name, e.g. "B-PER".
func (t Tag) String() string {
	if t.Valid() {
		return names[t]
	}
	if t < 0 {
		return "PAD"
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Parse converts a tag name to its index. Names are case-insensitive.
// "PAD" maps to Pad.
func Parse(name string) (Tag, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "PAD" {
		return Pad, nil
	}
	for i, s := range names {
		if s == n {
			return Tag(i), nil
		}
	}
	return Pad, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// FromInts converts raw indices to tags without validation.
func FromInts(xs []int) []Tag {
	tags := make([]Tag, len(xs))
	for i, x := range xs {
		tags[i] = Tag(x)
	}
	return tags
}

// Names returns the vocabulary names in index order.
func Names() []string {
	out := make([]string, Size)
	copy(out, names[:])
	return out
}
