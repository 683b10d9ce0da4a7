// Package corpus loads encoded evaluation datasets and batches them.
//
// A dataset file holds sentences that are already mapped to vocabulary ids:
//
//	{"id": "dev-17", "input_ids": [412, 9, 3301], "labels": ["B-PER", "I-PER", "O"]}
//
// Files ending in .jsonl hold one sentence per line; any other file holds a
// JSON array. Labels may be tag indices or tag names; -1 and "PAD" mark
// positions excluded from scoring.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/go-ner/tagset"
)

// ErrMalformed indicates a sentence whose ids and labels disagree.
var ErrMalformed = errors.New("corpus: malformed sentence")

// Sentence is one encoded sentence.
type Sentence struct {
	ID       string  `json:"id"`
	InputIDs []int64 `json:"input_ids"`
	Labels   Labels  `json:"labels"`
}

// Labels holds gold tag indices. It decodes from numbers or tag names.
type Labels []int

// UnmarshalJSON implements json.Unmarshaler.
func (l *Labels) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Labels, len(raw))
	for i, r := range raw {
		var n int
		if err := json.Unmarshal(r, &n); err == nil {
			out[i] = n
			continue
		}
		var name string
		if err := json.Unmarshal(r, &name); err != nil {
			return fmt.Errorf("label %d: %s is neither an index nor a tag name", i, r)
		}
		tag, err := tagset.Parse(name)
		if err != nil {
			return fmt.Errorf("label %d: %w", i, err)
		}
		out[i] = int(tag)
	}
	*l = out
	return nil
}

// Validate checks that ids and labels line up and that every label is a
// vocabulary index or negative.
func (s Sentence) Validate() error {
	if len(s.InputIDs) != len(s.Labels) {
		return fmt.Errorf("%w: %s has %d ids and %d labels", ErrMalformed, s.ID, len(s.InputIDs), len(s.Labels))
	}
	for i, l := range s.Labels {
		if l >= tagset.Size {
			return fmt.Errorf("%w: %s label %d is %d", ErrMalformed, s.ID, i, l)
		}
	}
	return nil
}

// Load reads a dataset file.
func Load(path string) ([]Sentence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var sentences []Sentence
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		sentences, err = parseLines(data)
	} else {
		err = json.Unmarshal(data, &sentences)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	for i := range sentences {
		if sentences[i].ID == "" {
			sentences[i].ID = fmt.Sprintf("%s:%d", filepath.Base(path), i)
		}
		if err := sentences[i].Validate(); err != nil {
			return nil, err
		}
	}
	return sentences, nil
}

func parseLines(data []byte) ([]Sentence, error) {
	var sentences []Sentence
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var s Sentence
		if err := json.Unmarshal(text, &s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sentences = append(sentences, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return sentences, nil
}

// LoadDir loads every .json and .jsonl file of dir in name order.
func LoadDir(dir string) ([]Sentence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var sentences []Sentence
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".jsonl":
		default:
			continue
		}

		loaded, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		sentences = append(sentences, loaded...)
	}

	return sentences, nil
}
