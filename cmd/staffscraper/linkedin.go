package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fcidata/staffscraper/internal/config"
	"github.com/fcidata/staffscraper/internal/enrich"
	"github.com/fcidata/staffscraper/internal/pipeline"
	"github.com/spf13/cobra"
)

var linkedinCommand = &cobra.Command{
	Use:   "linkedin",
	Short: "Enrich roster names with public LinkedIn profile data",
	Long: `Resolves every name in the roster CSV against the enrichment API, trying first/last name variations until one matches, and rewrites the results CSV after each person.

Names already present in the results file are skipped, so interrupted runs can simply be restarted. Requires the ENRICH_API_KEY environment variable.`,
	RunE: runLinkedInCmd,
}

var (
	linkedinConfigPath    string
	linkedinInput         string
	linkedinOut           string
	linkedinBaseURL       string
	linkedinCompanyDomain string
	linkedinEmployer      string
	linkedinVerbose       bool
)

func init() {
	linkedinCommand.Flags().StringVar(&linkedinConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	linkedinCommand.Flags().StringVarP(&linkedinInput, "input", "i", "", "Path to roster CSV with one full name per row")
	linkedinCommand.Flags().StringVarP(&linkedinOut, "out", "o", "", "Output directory (default \"output\")")
	linkedinCommand.Flags().StringVar(&linkedinBaseURL, "base-url", "", "Enrichment API base URL")
	linkedinCommand.Flags().StringVar(&linkedinCompanyDomain, "company-domain", "", "Employer domain passed to profile lookups")
	linkedinCommand.Flags().StringVar(&linkedinEmployer, "employer", "", "Employer name used to split off external experience")
	linkedinCommand.Flags().BoolVarP(&linkedinVerbose, "verbose", "v", false, "Print a summary box per resolved person")

	rootCmd.AddCommand(linkedinCommand)
}

func runLinkedInCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if linkedinConfigPath != "" {
		loadedCfg, err := config.LoadConfig(linkedinConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if linkedinVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", linkedinConfigPath)
		}
	}

	if cmd.Flags().Changed("input") {
		cfg.Input = linkedinInput
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = linkedinOut
	}
	if cmd.Flags().Changed("base-url") {
		cfg.EnrichBaseURL = linkedinBaseURL
	}
	if cmd.Flags().Changed("company-domain") {
		cfg.CompanyDomain = linkedinCompanyDomain
	}
	if cmd.Flags().Changed("employer") {
		cfg.Employer = linkedinEmployer
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = linkedinVerbose
	}

	defaults := config.Config{
		OutputDir:     "output",
		EnrichBaseURL: enrich.DefaultBaseURL,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	if cfg.Input == "" {
		return fmt.Errorf("--input is required (via flag or config)")
	}
	if cfg.CompanyDomain == "" {
		return fmt.Errorf("--company-domain is required (via flag or config)")
	}

	// Fail before any lookup if the key is missing
	creds := config.LoadCredentials()
	client, err := enrich.NewClient(enrich.Options{
		BaseURL:       cfg.EnrichBaseURL,
		APIKey:        creds.EnrichAPIKey,
		CompanyDomain: cfg.CompanyDomain,
		Employer:      cfg.Employer,
	})
	if err != nil {
		return fmt.Errorf("failed to create enrichment client: %w", err)
	}

	result, err := pipeline.RunLinkedIn(ctx, client, pipeline.LinkedInOptions{
		InputPath: cfg.Input,
		OutputDir: cfg.OutputDir,
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "linkedin run finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"not_found", result.NotFound)
	return nil
}
