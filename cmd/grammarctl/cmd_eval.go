package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilalfuldacs/grammar-check-api/internal/eval"
)

var evalSections = []string{"accuracy", "performance", "reliability", "all"}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [accuracy|performance|reliability|all]",
		Short: "Evaluate a running API",
		Long: `Run the evaluation suite against the API at --url.

  accuracy     precision, recall and F1 over expected corrections
  performance  response-time statistics and success rate
  reliability  input validation and endpoint availability

Cases default to a built-in set; --cases loads a YAML file with
"accuracy" and "performance" sections.

Examples:
  grammarctl eval
  grammarctl eval accuracy --cases cases.yaml
  grammarctl eval performance --runs 5 --json`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: evalSections,
		RunE: func(cmd *cobra.Command, args []string) error {
			section := "all"
			if len(args) == 1 {
				section = args[0]
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			casesPath, _ := cmd.Flags().GetString("cases")
			runs, _ := cmd.Flags().GetInt("runs")
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}

			cases := eval.DefaultCases()
			if casesPath != "" {
				var err error
				if cases, err = eval.LoadCases(casesPath); err != nil {
					return err
				}
			}

			c := apiClient(cmd)
			ctx := cmd.Context()
			report := eval.NewReport(c.BaseURL)

			if section == "accuracy" || section == "all" {
				acc := eval.RunAccuracy(ctx, c, cases.Accuracy)
				report.Accuracy = &acc
			}
			if section == "performance" || section == "all" {
				perf := eval.RunPerformance(ctx, c, cases.Performance, runs)
				report.Performance = &perf
			}
			if section == "reliability" || section == "all" {
				rel := eval.RunReliability(ctx, c)
				report.Reliability = &rel
			}

			if jsonOut {
				if err := report.WriteJSON(cmd.OutOrStdout()); err != nil {
					return err
				}
			} else {
				report.Print(cmd.OutOrStdout())
			}

			if !report.Passed() {
				return errors.New("evaluation failed")
			}
			return nil
		},
	}

	cmd.Flags().String("cases", "", "YAML file with evaluation cases")
	cmd.Flags().Int("runs", 3, "Runs per performance text")
	return cmd
}
