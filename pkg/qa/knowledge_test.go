package qa

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadReader(t *testing.T) {
	src := strings.Join([]string{
		`{"q": "What is caching", "a": "storing results for reuse"}`,
		``,
		`not json at all`,
		`{"q": "  What   IS   caching  ", "a": "overwritten"}`,
		`{"q": "", "a": "dropped, empty question"}`,
		`{"q": "What is Redis", "a": "an in-memory store"}`,
	}, "\n")

	kb, err := LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if kb.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", kb.Len())
	}

	rec, ok := kb.Lookup("what is caching")
	if !ok {
		t.Fatal("expected record under normalized key")
	}
	if rec.Answer != "overwritten" {
		t.Errorf("later duplicate must win, got %q", rec.Answer)
	}
}

func TestLoadMissingFile(t *testing.T) {
	kb, err := Load(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("missing file must yield empty base, got %v", err)
	}
	if kb.Len() != 0 {
		t.Errorf("expected empty base, got %d records", kb.Len())
	}
}

func TestKeysAreNormalized(t *testing.T) {
	kb := NewKnowledgeBase([]Record{
		{Question: "  HOW   does TTL work ", Answer: "entries expire"},
	})
	for _, key := range kb.keys {
		if key != Normalize(key) {
			t.Errorf("key %q is not in normalized form", key)
		}
	}
	if _, ok := kb.Lookup("how does ttl work"); !ok {
		t.Error("expected lookup by normalized question to succeed")
	}
}
