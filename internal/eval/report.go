package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Report bundles whichever evaluations were run.
type Report struct {
	Timestamp   string             `json:"timestamp"`
	URL         string             `json:"url"`
	Accuracy    *AccuracyReport    `json:"accuracy,omitempty"`
	Performance *PerformanceReport `json:"performance,omitempty"`
	Reliability *ReliabilityReport `json:"reliability,omitempty"`
}

// NewReport stamps a report for baseURL.
func NewReport(baseURL string) Report {
	return Report{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
	}
}

// Passed reports whether every section that ran met its bar: all
// reliability probes pass and no performance run failed.
func (r Report) Passed() bool {
	if r.Reliability != nil && r.Reliability.Passed != r.Reliability.Total {
		return false
	}
	if r.Performance != nil && r.Performance.Successes != r.Performance.Total {
		return false
	}
	return true
}

// WriteJSON encodes the report with indentation.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Print writes a human-readable summary.
func (r Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Grammar check evaluation against %s (%s)\n", r.URL, r.Timestamp)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if a := r.Accuracy; a != nil {
		fmt.Fprintln(w, "\nACCURACY")
		for i, c := range a.Cases {
			fmt.Fprintf(w, "\nCase %d: %s\n", i+1, c.Text)
			if c.Error != "" {
				fmt.Fprintf(w, "  FAILED: %s\n", c.Error)
				continue
			}
			fmt.Fprintf(w, "  correct: %d  false positives: %d  false negatives: %d\n",
				c.Correct, c.FalsePositives, c.FalseNegatives)
			for _, d := range c.Detected {
				fmt.Fprintf(w, "    - %q -> %q (%s)\n", d.Wrong, d.Corrected, d.ErrorType)
			}
		}
		fmt.Fprintf(w, "\nPrecision: %.3f\nRecall:    %.3f\nF1:        %.3f\nCorrect:   %d/%d\n",
			a.Precision, a.Recall, a.F1, a.Correct, a.Expected)
	}

	if p := r.Performance; p != nil {
		fmt.Fprintln(w, "\nPERFORMANCE")
		fmt.Fprintln(w, "| Chars | Run | Elapsed | Status | Issues |")
		fmt.Fprintln(w, "|-------|-----|---------|--------|--------|")
		for _, run := range p.Runs {
			if run.Error != "" {
				fmt.Fprintf(w, "| %5d | %3d | %7s | %6s | %6s |\n", run.Chars, run.Run, "-", "FAIL", "-")
				continue
			}
			fmt.Fprintf(w, "| %5d | %3d | %7s | %6d | %6d |\n",
				run.Chars, run.Run, run.Elapsed.Round(time.Millisecond), run.Status, run.Issues)
		}
		fmt.Fprintf(w, "\nAverage: %s\nMedian:  %s\nMin:     %s\nMax:     %s\nSuccess: %d/%d (%.1f%%)\n",
			p.Average.Round(time.Millisecond), p.Median.Round(time.Millisecond),
			p.Min.Round(time.Millisecond), p.Max.Round(time.Millisecond),
			p.Successes, p.Total, p.SuccessRate()*100)
	}

	if rel := r.Reliability; rel != nil {
		fmt.Fprintln(w, "\nRELIABILITY")
		for _, p := range rel.Probes {
			if p.Passed {
				fmt.Fprintf(w, "  PASS %s\n", p.Description)
			} else {
				fmt.Fprintf(w, "  FAIL %s (%s)\n", p.Description, p.Error)
			}
		}
		fmt.Fprintf(w, "\nScore: %d/%d\n", rel.Passed, rel.Total)
	}
}
