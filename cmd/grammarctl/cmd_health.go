package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilalfuldacs/grammar-check-api/internal/adapter"
)

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check API health, or probe the Ollama model directly",
		Long: `Without flags, queries GET /health on the API.

With --strict, skips the API and asks Ollama whether the configured model
is installed.

Examples:
  grammarctl health
  grammarctl health --strict --model gemma3:1b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			if strict {
				gw := ollamaAdapter(cmd)
				err := gw.ModelAvailable(cmd.Context())
				if jsonOut {
					resp := map[string]any{"model": gw.Model, "available": err == nil}
					if err != nil {
						resp["reason"] = err.Error()
					}
					if encErr := json.NewEncoder(out).Encode(resp); encErr != nil {
						return encErr
					}
				}
				if err != nil {
					return fmt.Errorf("model %s not ready: %w", gw.Model, err)
				}
				if !jsonOut {
					fmt.Fprintf(out, "✓ %s is available at %s\n", gw.Model, gw.BaseURL)
				}
				return nil
			}

			hs, err := apiClient(cmd).Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			if jsonOut {
				return json.NewEncoder(out).Encode(hs)
			}
			fmt.Fprintf(out, "status: %s\ninference connected: %t\n", hs.Status, hs.InferenceConnected)
			return nil
		},
	}

	cmd.Flags().Bool("strict", false, "Probe Ollama directly and require the model to be installed")
	addOllamaFlags(cmd)
	return cmd
}

func addOllamaFlags(cmd *cobra.Command) {
	cmd.Flags().String("ollama-url", "", "Ollama base URL (default from config/env)")
	cmd.Flags().String("model", "", "Ollama model (default from config/env)")
}

// ollamaAdapter builds an adapter from the config defaults, GRAMMARCHECK_*
// env vars, and the --ollama-url/--model flags, in increasing precedence.
func ollamaAdapter(cmd *cobra.Command) *adapter.OllamaAdapter {
	cfg := loadConfig()
	if u, _ := cmd.Flags().GetString("ollama-url"); u != "" {
		cfg.OllamaURL = u
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg.Model = m
	}
	gw := adapter.NewOllamaAdapter(cfg.OllamaURL, cfg.Model)
	if cmd.Flags().Changed("timeout") {
		gw.Client.Timeout = requestTimeout(cmd)
	}
	return gw
}
