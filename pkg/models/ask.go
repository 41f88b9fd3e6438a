package models

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Query string `json:"query"`
}

// Retrieval describes how the answer was found.
type Retrieval struct {
	Match string `json:"match"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	FromCache bool      `json:"from_cache"`
	LatencyMS int64     `json:"latency_ms"`
	CacheKey  string    `json:"cache_key"`
	Retrieval Retrieval `json:"retrieval"`
}

// CacheStats reports cache store performance counters.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}
