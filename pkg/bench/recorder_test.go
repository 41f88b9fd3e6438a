package bench

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/askbench/askbench/pkg/models"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	rec, err := OpenRecorder(filepath.Join(t.TempDir(), "bench_test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = rec.Close() })
	return rec
}

func TestRecordAndList(t *testing.T) {
	rec := newTestRecorder(t)
	ctx := context.Background()

	opts := Options{
		Host:        "http://127.0.0.1:8088",
		RPS:         5,
		Duration:    120 * time.Second,
		Warmup:      10 * time.Second,
		RepeatRatio: 0.7,
	}
	samples := []models.Sample{
		{ElapsedMS: 12, Hit: true},
		{ElapsedMS: 700, Hit: false},
	}
	rep := Summarize(samples)

	runID, err := rec.Record(ctx, opts, rep, samples)
	if err != nil {
		t.Fatal(err)
	}
	if runID <= 0 {
		t.Fatalf("expected positive run ID, got %d", runID)
	}

	runs, err := rec.Runs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	run := runs[0]
	if run.ID != runID {
		t.Errorf("run ID = %d, want %d", run.ID, runID)
	}
	if run.Host != opts.Host || run.RPS != opts.RPS || run.DurationSeconds != 120 {
		t.Errorf("unexpected run row: %+v", run)
	}
	if run.Total != 2 || run.HitRate != 50 {
		t.Errorf("unexpected summary in row: %+v", run)
	}
	if !run.Passed {
		t.Error("expected this run's verdict to pass")
	}
}

func TestRunsOrderAndLimit(t *testing.T) {
	rec := newTestRecorder(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := rec.Record(ctx, Options{Host: "h"}, models.Report{}, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := rec.Runs(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID < runs[1].ID {
		t.Error("runs must be newest first")
	}
}
