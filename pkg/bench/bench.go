// Package bench drives synthetic traffic against the /ask endpoint and
// reports latency percentiles and cache hit-rate.
package bench

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/askbench/askbench/pkg/models"
)

// Options configures one benchmark run.
type Options struct {
	Host        string
	RPS         float64
	Duration    time.Duration
	Warmup      time.Duration
	RepeatRatio float64
	Timeout     time.Duration

	// Client overrides the HTTP client, for tests. Timeout above applies
	// only to the default client.
	Client *http.Client
}

// popularSize caps the repeated-query subset of the pool.
const popularSize = 20

// LoadQueries reads a newline-delimited query list, skipping blank lines.
// An empty pool is a configuration error: there is nothing to send.
func LoadQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file: %w", err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			queries = append(queries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queries file: %w", err)
	}
	if len(queries) == 0 {
		return nil, errors.New("queries file is empty")
	}
	return queries, nil
}

// Run executes a warmup phase followed by a measured phase against
// opts.Host, pacing open-loop at 1/RPS, and returns the measured samples.
// Failed probes are recorded with their elapsed time and hit=false so they
// inflate the latency distribution instead of vanishing from it. ctx can
// end the run early; samples collected so far are still returned.
func Run(ctx context.Context, opts Options, queries []string) ([]models.Sample, error) {
	if len(queries) == 0 {
		return nil, errors.New("empty query pool")
	}
	if opts.RepeatRatio < 0 || opts.RepeatRatio > 1 {
		return nil, fmt.Errorf("repeat ratio %v outside [0,1]", opts.RepeatRatio)
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	n := popularSize
	if len(queries) < n {
		n = len(queries)
	}
	popular := queries[:n]

	pick := func() string {
		if rand.Float64() < opts.RepeatRatio {
			return popular[rand.Intn(len(popular))]
		}
		return queries[rand.Intn(len(queries))]
	}

	rps := opts.RPS
	if rps < 0.1 {
		rps = 0.1
	}
	interval := time.Duration(float64(time.Second) / rps)

	// Warmup: same traffic shape, outcomes discarded.
	warmEnd := time.Now().Add(opts.Warmup)
	for time.Now().Before(warmEnd) {
		probe(ctx, client, opts.Host, pick())
		if !pace(ctx, interval) {
			return nil, ctx.Err()
		}
	}

	var samples []models.Sample
	end := time.Now().Add(opts.Duration)
	for time.Now().Before(end) {
		samples = append(samples, probe(ctx, client, opts.Host, pick()))
		if !pace(ctx, interval) {
			return samples, ctx.Err()
		}
	}
	return samples, nil
}

// pace sleeps one inter-arrival interval. The wait is fixed, independent of
// how long the previous response took.
func pace(ctx context.Context, interval time.Duration) bool {
	t := time.NewTimer(interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// probe issues one /ask request and measures the full round trip. Any
// failure — transport error, non-success status, unparsable body — still
// yields a sample with the observed elapsed time and hit=false.
func probe(ctx context.Context, client *http.Client, host, query string) models.Sample {
	body, _ := json.Marshal(models.AskRequest{Query: query})

	start := time.Now()
	sample := func(hit bool) models.Sample {
		return models.Sample{
			ElapsedMS: float64(time.Since(start)) / float64(time.Millisecond),
			Hit:       hit,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, host+"/ask", bytes.NewReader(body))
	if err != nil {
		return sample(false)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return sample(false)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return sample(false)
	}
	var ask models.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&ask); err != nil {
		return sample(false)
	}
	return sample(ask.FromCache)
}
