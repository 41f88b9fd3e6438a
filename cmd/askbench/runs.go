package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/askbench/askbench/pkg/bench"
)

func newRunsCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded benchmark runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := bench.OpenRecorder(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = rec.Close() }()

			runs, err := rec.Runs(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No recorded runs.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tHOST\tRPS\tREQS\tHIT%\tP50\tP95\tP99\tMEAN\tVERDICT")
			for _, r := range runs {
				verdict := "MISSED"
				if r.Passed {
					verdict = "OK"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t%d\t%.1f\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n",
					r.ID, r.CreatedAt.Format("2006-01-02T15:04:05"), r.Host, r.RPS,
					r.Total, r.HitRate, r.P50, r.P95, r.P99, r.Mean, verdict)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "askbench.db", "SQLite file with run history")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}
