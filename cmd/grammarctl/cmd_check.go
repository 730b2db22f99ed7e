package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <text>",
		Short: "Check text for grammar errors",
		Long: `Send text to POST /check and print the corrections.

With --direct, bypasses the API and runs the check against Ollama in-process.

Examples:
  grammarctl check "I goes to the store yesterday."
  grammarctl check --direct --model gemma3:1b "She have a apple."`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			direct, _ := cmd.Flags().GetBool("direct")
			jsonOut, _ := cmd.Flags().GetBool("json")
			text := strings.Join(args, " ")

			var issues []grammar.Issue
			if direct {
				var err error
				issues, err = grammar.Check(cmd.Context(), ollamaAdapter(cmd), text)
				if err != nil {
					return fmt.Errorf("check failed: %w", err)
				}
			} else {
				res, err := apiClient(cmd).Check(cmd.Context(), text)
				if err != nil {
					return fmt.Errorf("check failed: %w", err)
				}
				if !res.OK() {
					return fmt.Errorf("API returned %d: %s", res.Status, res.Message)
				}
				issues = res.Issues
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{"issues": issues})
			}
			printIssues(cmd.OutOrStdout(), issues)
			return nil
		},
	}

	cmd.Flags().Bool("direct", false, "Query Ollama directly instead of the API")
	addOllamaFlags(cmd)
	return cmd
}

func printIssues(w io.Writer, issues []grammar.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No grammar issues found.")
		return
	}
	fmt.Fprintf(w, "Found %d issue(s):\n", len(issues))
	for _, i := range issues {
		fmt.Fprintf(w, "  - %q -> %q (%s)\n", i.Wrong, i.Corrected, i.ErrorType)
	}
}
