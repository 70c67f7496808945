// Package main provides the entry point for the staff directory scraper CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "staffscraper",
	Short: "Staff directory and LinkedIn enrichment scraper",
	Long:  "staffscraper collects staff profiles from the corporate intranet directory and enriches them with public LinkedIn data, writing incremental CSV and JSON output.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).
		With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
