// Package server implements the cache-aside question answering endpoint.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/askbench/askbench/pkg/config"
	"github.com/askbench/askbench/pkg/models"
	"github.com/askbench/askbench/pkg/qa"
	"github.com/askbench/askbench/pkg/simulate"
)

// Cache is the key-value store the handler reads and writes through.
// Absent keys report ok=false with a nil error; store errors also report
// ok=false so the handler can fall through to recomputation.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
}

// Server answers /ask requests cache-aside: check the cache, and on a miss
// simulate the expensive retrieval, match an answer from the knowledge base
// and write it back with a TTL.
type Server struct {
	cfg   *config.Config
	kb    *qa.KnowledgeBase
	cache Cache
	sim   simulate.Simulator
	mux   *http.ServeMux
}

// New creates a Server wired with all dependencies. cache may be nil, which
// behaves like caching disabled.
func New(cfg *config.Config, kb *qa.KnowledgeBase, cache Cache) *Server {
	s := &Server{
		cfg:   cfg,
		kb:    kb,
		cache: cache,
		sim: simulate.Simulator{
			BaseMS:   cfg.Simulate.LatencyMS,
			JitterMS: cfg.Simulate.JitterMS,
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ask", s.handleAsk)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server with graceful shutdown support.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("askbench serving on %s (cache enabled: %v)", s.cfg.Listen, s.cacheEnabled())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) cacheEnabled() bool {
	return s.cfg.Cache.Enabled && s.cache != nil
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	cacheKey := "qa:" + qa.Normalize(req.Query)

	// Cache check. Read errors fail open: the request proceeds down the
	// full-computation path as if the key were absent.
	if s.cacheEnabled() {
		cached, ok, err := s.cache.Get(r.Context(), cacheKey)
		if err != nil {
			log.Printf("cache read error, treating as miss: %v", err)
		}
		if ok {
			writeJSON(w, http.StatusOK, models.AskResponse{
				Query:     req.Query,
				Answer:    cached,
				FromCache: true,
				LatencyMS: time.Since(start).Milliseconds(),
				CacheKey:  cacheKey,
				Retrieval: models.Retrieval{Match: qa.MatchCache.Label()},
			})
			return
		}
	}

	// Simulated retrieval cost of the uncached path.
	if err := s.sim.Sleep(r.Context()); err != nil {
		// Client went away mid-simulation.
		return
	}

	ans := qa.Match(req.Query, s.kb)

	// Best-effort write-back. Concurrent misses on the same key may each
	// reach here and overwrite one another; values are idempotent, so last
	// write wins. There is deliberately no single-flight collapsing: the
	// duplicated work is part of what the harness measures.
	if s.cacheEnabled() {
		ttl := time.Duration(s.cfg.Cache.TTLSeconds) * time.Second
		if err := s.cache.SetEx(r.Context(), cacheKey, ans.Text, ttl); err != nil {
			log.Printf("cache write dropped: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, models.AskResponse{
		Query:     req.Query,
		Answer:    ans.Text,
		FromCache: false,
		LatencyMS: time.Since(start).Milliseconds(),
		CacheKey:  cacheKey,
		Retrieval: models.Retrieval{Match: ans.Kind.Label()},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"redis":  s.cfg.RedisURL,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"message":%q,"code":%d}}`, message, code)
}
