package models

import "time"

// Sample is one measured request-response cycle.
type Sample struct {
	ElapsedMS float64 `json:"elapsed_ms"`
	Hit       bool    `json:"hit"`
}

// Report summarizes one benchmark run.
type Report struct {
	Total     int     `json:"total"`
	Hits      int     `json:"hits"`
	HitRate   float64 `json:"hit_rate"`
	P50       float64 `json:"p50"`
	P95       float64 `json:"p95"`
	P99       float64 `json:"p99"`
	Mean      float64 `json:"mean"`
	TargetP95 float64 `json:"target_p95"`
	Passed    bool    `json:"passed"`
}

// BenchRun is a persisted benchmark run summary.
type BenchRun struct {
	ID              int64     `json:"id"`
	Host            string    `json:"host"`
	RPS             float64   `json:"rps"`
	DurationSeconds int       `json:"duration_seconds"`
	WarmupSeconds   int       `json:"warmup_seconds"`
	RepeatRatio     float64   `json:"repeat_ratio"`
	Total           int       `json:"total"`
	HitRate         float64   `json:"hit_rate"`
	P50             float64   `json:"p50"`
	P95             float64   `json:"p95"`
	P99             float64   `json:"p99"`
	Mean            float64   `json:"mean"`
	Passed          bool      `json:"passed"`
	CreatedAt       time.Time `json:"created_at"`
}
