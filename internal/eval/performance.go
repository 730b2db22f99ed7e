package eval

import (
	"context"
	"slices"
	"time"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

// Run is a single timed request.
type Run struct {
	Chars   int           `json:"chars"`
	Run     int           `json:"run"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Status  int           `json:"status"`
	Issues  int           `json:"issues"`
	Error   string        `json:"error,omitempty"`
}

// PerformanceReport summarises response times. Failed requests still count
// towards the timing statistics, only successes count towards Successes.
type PerformanceReport struct {
	Runs      []Run         `json:"runs"`
	Average   time.Duration `json:"average_ns"`
	Median    time.Duration `json:"median_ns"`
	Min       time.Duration `json:"min_ns"`
	Max       time.Duration `json:"max_ns"`
	Successes int           `json:"successes"`
	Total     int           `json:"total"`
}

// SuccessRate returns the fraction of runs that answered 200.
func (r PerformanceReport) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Total)
}

// RunPerformance checks each text runs times.
func RunPerformance(ctx context.Context, c *Client, texts []string, runs int) PerformanceReport {
	report := PerformanceReport{Total: len(texts) * runs}
	var times []time.Duration

	for _, text := range texts {
		for i := 1; i <= runs; i++ {
			run := Run{Chars: grammar.TextLength(text), Run: i}

			res, err := c.Check(ctx, text)
			run.Elapsed = res.Elapsed
			run.Status = res.Status
			switch {
			case err != nil:
				run.Error = err.Error()
			case res.OK():
				report.Successes++
				run.Issues = len(res.Issues)
			default:
				run.Error = res.Message
			}
			if res.Elapsed > 0 {
				times = append(times, res.Elapsed)
			}
			report.Runs = append(report.Runs, run)
		}
	}

	report.Average, report.Median, report.Min, report.Max = summarize(times)
	return report
}

func summarize(times []time.Duration) (avg, median, lo, hi time.Duration) {
	if len(times) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(times)
	slices.Sort(sorted)

	var total time.Duration
	for _, t := range sorted {
		total += t
	}
	avg = total / time.Duration(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	return avg, median, sorted[0], sorted[len(sorted)-1]
}
