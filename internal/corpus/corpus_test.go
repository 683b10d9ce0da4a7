package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jamesainslie/go-ner/tagset"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_JSONArray(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dev.json", `[
		{"id": "a", "input_ids": [11, 12, 13], "labels": [0, 1, 6]},
		{"input_ids": [21, 22], "labels": ["b-org", "PAD"]}
	]`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2", len(got))
	}
	if got[0].ID != "a" || !slices.Equal(got[0].Labels, Labels{0, 1, 6}) {
		t.Errorf("sentence 0 = %+v", got[0])
	}
	if got[1].ID != "dev.json:1" {
		t.Errorf("generated ID = %q", got[1].ID)
	}
	if !slices.Equal(got[1].Labels, Labels{int(tagset.BOrg), -1}) {
		t.Errorf("labels = %v", got[1].Labels)
	}
}

func TestLoad_JSONLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dev.jsonl",
		`{"id": "x", "input_ids": [1, 2], "labels": ["B-LOC", "I-LOC"]}`+"\n\n"+
			`{"id": "y", "input_ids": [3], "labels": [6]}`+"\n")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 || got[1].ID != "y" {
		t.Fatalf("got %+v", got)
	}
	if !slices.Equal(got[0].Labels, Labels{4, 5}) {
		t.Errorf("labels = %v", got[0].Labels)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		file      string
		content   string
		malformed bool
	}{
		{"length mismatch", "a.json", `[{"input_ids": [1, 2], "labels": [6]}]`, true},
		{"label out of range", "b.json", `[{"input_ids": [1], "labels": [7]}]`, true},
		{"unknown tag", "c.json", `[{"input_ids": [1], "labels": ["B-MISC"]}]`, false},
		{"bad line", "d.jsonl", "{\"input_ids\": [1], \"labels\": [6]}\nnot json\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.malformed != errors.Is(err, ErrMalformed) {
				t.Errorf("errors.Is(ErrMalformed) = %v for %v", !tt.malformed, err)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.jsonl", `{"id": "second", "input_ids": [2], "labels": [6]}`)
	writeFile(t, dir, "a.json", `[{"id": "first", "input_ids": [1], "labels": [0]}]`)
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "first" || got[1].ID != "second" {
		t.Errorf("got %+v", got)
	}
}

func TestBatches(t *testing.T) {
	sentences := []Sentence{
		{ID: "a", InputIDs: []int64{1, 2, 3}, Labels: Labels{0, 1, 6}},
		{ID: "b", InputIDs: []int64{4}, Labels: Labels{2}},
		{ID: "c", InputIDs: []int64{5, 6}, Labels: Labels{4, 5}},
	}

	t.Run("pad to batch max", func(t *testing.T) {
		got := Batches(sentences, 2, 0)
		if len(got) != 2 {
			t.Fatalf("got %d batches, want 2", len(got))
		}
		if !slices.Equal(got[0].InputIDs[1], []int64{4, 0, 0}) {
			t.Errorf("padded ids = %v", got[0].InputIDs[1])
		}
		if !slices.Equal(got[0].Labels[1], []int{2, -1, -1}) {
			t.Errorf("padded labels = %v", got[0].Labels[1])
		}
		if len(got[1].InputIDs) != 1 || len(got[1].InputIDs[0]) != 2 {
			t.Errorf("last batch = %+v", got[1])
		}
	})

	t.Run("fixed length truncates", func(t *testing.T) {
		got := Batches(sentences, 3, 2)
		if len(got) != 1 {
			t.Fatalf("got %d batches, want 1", len(got))
		}
		if !slices.Equal(got[0].Labels[0], []int{0, 1}) {
			t.Errorf("truncated labels = %v", got[0].Labels[0])
		}
		if !slices.Equal(got[0].InputIDs[1], []int64{4, 0}) {
			t.Errorf("padded ids = %v", got[0].InputIDs[1])
		}
	})

	t.Run("does not alias input", func(t *testing.T) {
		got := Batches(sentences, 1, 0)
		got[0].Labels[0][0] = 6
		if sentences[0].Labels[0] != 0 {
			t.Error("batch shares memory with sentence")
		}
	})

	if got := Batches(nil, 4, 0); len(got) != 0 {
		t.Errorf("Batches(nil) = %v", got)
	}
}

func TestDescribe(t *testing.T) {
	st := Describe([]Sentence{
		{InputIDs: []int64{1, 2, 3, 4}, Labels: Labels{0, 1, 6, 2}},
		{InputIDs: []int64{5, 6}, Labels: Labels{4, -1}},
	})
	if st.Sentences != 2 || st.Tokens != 5 {
		t.Errorf("sentences/tokens = %d/%d, want 2/5", st.Sentences, st.Tokens)
	}
	if st.Entities[tagset.Person] != 1 || st.Entities[tagset.Organization] != 1 || st.Entities[tagset.Location] != 1 {
		t.Errorf("entities = %v", st.Entities)
	}
}
