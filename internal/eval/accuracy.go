package eval

import (
	"context"
	"fmt"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

// CaseResult is the outcome of one accuracy case.
type CaseResult struct {
	Text           string          `json:"text"`
	Detected       []grammar.Issue `json:"detected"`
	Correct        int             `json:"correct"`
	FalsePositives int             `json:"false_positives"`
	FalseNegatives int             `json:"false_negatives"`
	Error          string          `json:"error,omitempty"`
}

// AccuracyReport aggregates detection quality across all cases.
type AccuracyReport struct {
	Cases          []CaseResult `json:"cases"`
	Correct        int          `json:"correct"`
	FalsePositives int          `json:"false_positives"`
	FalseNegatives int          `json:"false_negatives"`
	Expected       int          `json:"expected"`
	Precision      float64      `json:"precision"`
	Recall         float64      `json:"recall"`
	F1             float64      `json:"f1"`
}

// Score compares detected and expected issues as sets of exact
// (wrong, corrected, error_type) tuples.
func Score(detected, expected []grammar.Issue) (correct, falsePos, falseNeg int) {
	got := toSet(detected)
	want := toSet(expected)

	for issue := range got {
		if _, ok := want[issue]; ok {
			correct++
		} else {
			falsePos++
		}
	}
	falseNeg = len(want) - correct
	return correct, falsePos, falseNeg
}

func toSet(issues []grammar.Issue) map[grammar.Issue]struct{} {
	set := make(map[grammar.Issue]struct{}, len(issues))
	for _, i := range issues {
		set[i] = struct{}{}
	}
	return set
}

// RunAccuracy checks every case and computes precision, recall and F1.
// Recall is taken over all expected issues, including those of cases
// whose request failed.
func RunAccuracy(ctx context.Context, c *Client, cases []Case) AccuracyReport {
	var report AccuracyReport

	for _, tc := range cases {
		report.Expected += len(tc.Expected)
		cr := CaseResult{Text: tc.Text}

		res, err := c.Check(ctx, tc.Text)
		switch {
		case err != nil:
			cr.Error = err.Error()
		case !res.OK():
			cr.Error = fmt.Sprintf("API error: %d", res.Status)
		default:
			cr.Detected = res.Issues
			cr.Correct, cr.FalsePositives, cr.FalseNegatives = Score(res.Issues, tc.Expected)
			report.Correct += cr.Correct
			report.FalsePositives += cr.FalsePositives
			report.FalseNegatives += cr.FalseNegatives
		}
		report.Cases = append(report.Cases, cr)
	}

	if n := report.Correct + report.FalsePositives; n > 0 {
		report.Precision = float64(report.Correct) / float64(n)
	}
	if report.Expected > 0 {
		report.Recall = float64(report.Correct) / float64(report.Expected)
	}
	if s := report.Precision + report.Recall; s > 0 {
		report.F1 = 2 * report.Precision * report.Recall / s
	}
	return report
}
