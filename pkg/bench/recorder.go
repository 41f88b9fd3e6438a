package bench

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/askbench/askbench/pkg/models"
)

// Recorder persists benchmark runs to a SQLite database so a cached run can
// be compared against its no-cache control run afterwards.
type Recorder struct {
	db *sql.DB
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS bench_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	host TEXT NOT NULL,
	rps REAL NOT NULL,
	duration_seconds INTEGER NOT NULL,
	warmup_seconds INTEGER NOT NULL,
	repeat_ratio REAL NOT NULL,
	total INTEGER NOT NULL,
	hit_rate REAL NOT NULL,
	p50 REAL NOT NULL,
	p95 REAL NOT NULL,
	p99 REAL NOT NULL,
	mean REAL NOT NULL,
	passed INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const createSamplesTable = `
CREATE TABLE IF NOT EXISTS bench_samples (
	run_id INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	elapsed_ms REAL NOT NULL,
	hit INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// OpenRecorder opens (creating if needed) the run database at path and runs
// auto-migration.
func OpenRecorder(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open bench db: %w", err)
	}
	for _, stmt := range []string{createRunsTable, createSamplesTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate bench db: %w", err)
		}
	}
	return &Recorder{db: db}, nil
}

// Record stores one finished run with its samples and returns the run ID.
func (r *Recorder) Record(ctx context.Context, opts Options, rep models.Report, samples []models.Sample) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bench_runs
		 (host, rps, duration_seconds, warmup_seconds, repeat_ratio,
		  total, hit_rate, p50, p95, p99, mean, passed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		opts.Host, opts.RPS, int(opts.Duration.Seconds()), int(opts.Warmup.Seconds()),
		opts.RepeatRatio, rep.Total, rep.HitRate, rep.P50, rep.P95, rep.P99,
		rep.Mean, rep.Passed, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO bench_samples (run_id, seq, elapsed_ms, hit) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("record samples: %w", err)
	}
	defer stmt.Close()
	for i, s := range samples {
		if _, err := stmt.ExecContext(ctx, runID, i, s.ElapsedMS, s.Hit); err != nil {
			return 0, fmt.Errorf("record sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first.
func (r *Recorder) Runs(ctx context.Context, limit int) ([]models.BenchRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, host, rps, duration_seconds, warmup_seconds, repeat_ratio,
		        total, hit_rate, p50, p95, p99, mean, passed, created_at
		 FROM bench_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.BenchRun
	for rows.Next() {
		var run models.BenchRun
		if err := rows.Scan(&run.ID, &run.Host, &run.RPS, &run.DurationSeconds,
			&run.WarmupSeconds, &run.RepeatRatio, &run.Total, &run.HitRate,
			&run.P50, &run.P95, &run.P99, &run.Mean, &run.Passed, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the database connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}
