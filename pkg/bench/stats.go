package bench

import (
	"fmt"
	"io"
	"sort"

	"github.com/askbench/askbench/pkg/models"
)

// TargetP95MS is the pass/fail threshold for the p95 latency verdict.
const TargetP95MS = 900.0

// Percentile computes the p-th percentile of values by linear interpolation
// between ranks. An empty input yields 0. values is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return percentileSorted(s, p)
}

func percentileSorted(s []float64, p float64) float64 {
	k := float64(len(s)-1) * (p / 100.0)
	f := int(k)
	c := f + 1
	if c > len(s)-1 {
		c = len(s) - 1
	}
	if f == c {
		return s[f]
	}
	return s[f]*(float64(c)-k) + s[c]*(k-float64(f))
}

// Summarize reduces a run's samples to its report: interpolated
// percentiles, mean, hit-rate and the p95 verdict.
func Summarize(samples []models.Sample) models.Report {
	rep := models.Report{TargetP95: TargetP95MS}
	if len(samples) == 0 {
		return rep
	}

	latencies := make([]float64, len(samples))
	sum := 0.0
	for i, s := range samples {
		latencies[i] = s.ElapsedMS
		sum += s.ElapsedMS
		if s.Hit {
			rep.Hits++
		}
	}
	sort.Float64s(latencies)

	rep.Total = len(samples)
	rep.HitRate = float64(rep.Hits) / float64(rep.Total) * 100.0
	rep.P50 = percentileSorted(latencies, 50)
	rep.P95 = percentileSorted(latencies, 95)
	rep.P99 = percentileSorted(latencies, 99)
	rep.Mean = sum / float64(rep.Total)
	rep.Passed = rep.P95 < rep.TargetP95
	return rep
}

// PrintReport renders the console report for a finished run.
func PrintReport(w io.Writer, rep models.Report) {
	if rep.Total == 0 {
		fmt.Fprintln(w, "No samples collected.")
		return
	}
	fmt.Fprintln(w, "\n=== Benchmark results ===")
	fmt.Fprintf(w, "Requests: %d, cache hit-rate: %.1f%%\n", rep.Total, rep.HitRate)
	fmt.Fprintf(w, "Latency (ms): p50=%.0f  p95=%.0f  p99=%.0f  mean=%.0f\n",
		rep.P50, rep.P95, rep.P99, rep.Mean)
	verdict := "MISSED"
	if rep.Passed {
		verdict = "OK"
	}
	fmt.Fprintf(w, "Target p95 < %.0f ms: %s\n", rep.TargetP95, verdict)
}
