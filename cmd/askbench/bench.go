package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/askbench/askbench/pkg/bench"
)

func newBenchCmd() *cobra.Command {
	var (
		host        string
		rps         float64
		duration    int
		warmup      int
		queriesFile string
		repeatRatio float64
		dbPath      string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a paced load test against /ask and report latency percentiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if repeatRatio < 0 || repeatRatio > 1 {
				return fmt.Errorf("--repeat-ratio must be in [0,1], got %v", repeatRatio)
			}
			if rps <= 0 {
				return fmt.Errorf("--rps must be positive, got %v", rps)
			}

			queries, err := bench.LoadQueries(queriesFile)
			if err != nil {
				return err
			}

			opts := bench.Options{
				Host:        host,
				RPS:         rps,
				Duration:    time.Duration(duration) * time.Second,
				Warmup:      time.Duration(warmup) * time.Second,
				RepeatRatio: repeatRatio,
			}

			log.Printf("bench: %d queries against %s at %.1f rps (%ds warmup, %ds measured)",
				len(queries), host, rps, warmup, duration)

			samples, err := bench.Run(context.Background(), opts, queries)
			if err != nil {
				return err
			}

			rep := bench.Summarize(samples)
			bench.PrintReport(os.Stdout, rep)

			if dbPath != "" {
				rec, err := bench.OpenRecorder(dbPath)
				if err != nil {
					return err
				}
				defer func() { _ = rec.Close() }()
				runID, err := rec.Record(context.Background(), opts, rep, samples)
				if err != nil {
					return err
				}
				fmt.Printf("Recorded as run %d in %s\n", runID, dbPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "http://127.0.0.1:8088", "base URL of the server")
	cmd.Flags().Float64Var(&rps, "rps", 5.0, "target requests per second")
	cmd.Flags().IntVar(&duration, "duration", 120, "measured phase length in seconds")
	cmd.Flags().IntVar(&warmup, "warmup", 10, "warmup length in seconds, outcomes discarded")
	cmd.Flags().StringVar(&queriesFile, "queries-file", "data/bench_queries.txt", "newline-delimited query list")
	cmd.Flags().Float64Var(&repeatRatio, "repeat-ratio", 0.7, "fraction of requests drawn from the popular subset")
	cmd.Flags().StringVar(&dbPath, "db", "askbench.db", "SQLite file for run history, empty to disable")
	return cmd
}
