package qa

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
)

// Record is a single question-answer pair.
type Record struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// KnowledgeBase holds question-answer records keyed by normalized question
// text. It is built once at startup and read-only afterwards, so concurrent
// lookups need no locking.
type KnowledgeBase struct {
	records map[string]Record
	keys    []string // sorted, fixes matcher iteration order
	tokens  map[string]map[string]struct{}
}

// NewKnowledgeBase builds a KnowledgeBase from records. Records whose
// question normalizes to the empty string are dropped; later records with a
// duplicate normalized question overwrite earlier ones.
func NewKnowledgeBase(records []Record) *KnowledgeBase {
	kb := &KnowledgeBase{
		records: make(map[string]Record, len(records)),
		tokens:  make(map[string]map[string]struct{}, len(records)),
	}
	for _, rec := range records {
		key := Normalize(rec.Question)
		if key == "" {
			continue
		}
		kb.records[key] = rec
	}
	kb.keys = make([]string, 0, len(kb.records))
	for key := range kb.records {
		kb.keys = append(kb.keys, key)
		kb.tokens[key] = tokenize(key)
	}
	sort.Strings(kb.keys)
	return kb
}

// Load reads newline-delimited JSON records with fields "q" and "a" from
// path. A missing file yields an empty knowledge base, not an error.
// Malformed lines are logged and skipped.
func Load(path string) (*KnowledgeBase, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewKnowledgeBase(nil), nil
		}
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads records from r. See Load.
func LoadReader(r io.Reader) (*KnowledgeBase, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Printf("qa: skipping malformed record at line %d: %v", line, err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return NewKnowledgeBase(records), nil
}

// Len returns the number of records.
func (kb *KnowledgeBase) Len() int {
	return len(kb.records)
}

// Lookup returns the record stored under a normalized key.
func (kb *KnowledgeBase) Lookup(key string) (Record, bool) {
	rec, ok := kb.records[key]
	return rec, ok
}
