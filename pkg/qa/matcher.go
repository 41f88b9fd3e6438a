package qa

// MatchKind classifies how an answer was produced.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchKeyword
	MatchNotFound
	MatchCache
)

// Label returns the human-readable wire label for the kind.
func (k MatchKind) Label() string {
	switch k {
	case MatchExact:
		return "exact match"
	case MatchKeyword:
		return "by words"
	case MatchCache:
		return "cache"
	default:
		return "no match"
	}
}

// Answer is the result of a knowledge-base lookup.
type Answer struct {
	Text string
	Kind MatchKind
}

// NotFoundAnswer is returned when nothing in the knowledge base matches.
const NotFoundAnswer = "No answer found in the knowledge base. Try rephrasing the question."

// Match finds the best stored answer for a query. An exact hit on the
// normalized question wins outright; otherwise the record sharing the most
// word tokens (longer than two characters) with the query wins, ties broken
// by the first key in sorted order. Match never fails: with no overlap at
// all it returns NotFoundAnswer.
func Match(query string, kb *KnowledgeBase) Answer {
	nq := Normalize(query)
	if rec, ok := kb.records[nq]; ok {
		return Answer{Text: rec.Answer, Kind: MatchExact}
	}

	queryTokens := tokenize(nq)
	bestScore := 0
	var best Record
	for _, key := range kb.keys {
		score := 0
		for tok := range kb.tokens[key] {
			if _, ok := queryTokens[tok]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = kb.records[key]
		}
	}
	if bestScore > 0 {
		return Answer{Text: best.Answer, Kind: MatchKeyword}
	}
	return Answer{Text: NotFoundAnswer, Kind: MatchNotFound}
}
