package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bilalfuldacs/grammar-check-api/internal/config"
	"github.com/bilalfuldacs/grammar-check-api/internal/eval"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grammarctl",
		Short: "Command-line client for the grammar check API",
		Long: `grammarctl talks to a running grammar check API, or straight to Ollama.

It can check a piece of text, probe service health, and run the
accuracy, performance and reliability evaluations.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("url", "http://localhost:8000", "Grammar check API base URL")
	rootCmd.PersistentFlags().String("api-key", "", "API key sent as X-API-Key")
	rootCmd.PersistentFlags().Duration("timeout", eval.DefaultTimeout, "Per-request timeout")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newHealthCmd(),
		newCheckCmd(),
		newEvalCmd(),
	)
	return rootCmd
}

func apiClient(cmd *cobra.Command) *eval.Client {
	url, _ := cmd.Flags().GetString("url")
	apiKey, _ := cmd.Flags().GetString("api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	c := eval.NewClient(url, apiKey)
	if timeout > 0 {
		c.HTTP.Timeout = timeout
	}
	return c
}

func requestTimeout(cmd *cobra.Command) time.Duration {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return eval.DefaultTimeout
	}
	return timeout
}

func loadConfig() config.Config {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		return config.Defaults()
	}
	return cfg
}
