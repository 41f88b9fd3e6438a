package qa

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	wordRE       = regexp.MustCompile(`\w+`)
)

// Normalize maps raw query text to its canonical lookup key: trimmed,
// lower-cased, with runs of whitespace collapsed to a single space.
// The same function keys both the knowledge base and the cache; the two
// must never diverge.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return whitespaceRE.ReplaceAllString(text, " ")
}

// tokenize splits normalized text into word tokens longer than two
// characters, deduplicated.
func tokenize(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordRE.FindAllString(text, -1) {
		if len(w) > 2 {
			set[w] = struct{}{}
		}
	}
	return set
}
