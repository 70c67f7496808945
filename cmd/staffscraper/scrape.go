package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fcidata/staffscraper/internal/config"
	"github.com/fcidata/staffscraper/internal/directory"
	"github.com/fcidata/staffscraper/internal/pipeline"
	"github.com/spf13/cobra"
)

var scrapeCommand = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape staff profiles from the intranet directory",
	Long: `Processes every name in the roster CSV: search the people directory, open the profile, extract personal details, tenure, experience, education, documents, projects and the profile photo, and append the results to the output files.

Names already present in the output CSV are skipped, so interrupted runs can simply be restarted. Configuration can be loaded from a JSON file using --config; command-line arguments override config file values.`,
	RunE: runScrapeCmd,
}

var (
	scrapeConfigPath  string
	scrapeInput       string
	scrapeOut         string
	scrapeSearchURL   string
	scrapeProfileDir  string
	scrapeChromePath  string
	scrapeHeadless    bool
	scrapeUnitMarkers []string
	scrapeVerbose     bool
)

func init() {
	// Config file flag (processed first)
	scrapeCommand.Flags().StringVar(&scrapeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	scrapeCommand.Flags().StringVarP(&scrapeInput, "input", "i", "", "Path to roster CSV with one full name per row")
	scrapeCommand.Flags().StringVarP(&scrapeOut, "out", "o", "", "Output directory (default \"output\")")
	scrapeCommand.Flags().StringVar(&scrapeSearchURL, "search-url", "", "People directory search page URL")
	scrapeCommand.Flags().StringVar(&scrapeProfileDir, "profile-dir", "", "Persistent browser profile directory, keeps the SSO session across runs (default \".browser-profile\")")
	scrapeCommand.Flags().StringVar(&scrapeChromePath, "chrome-path", "", "Chrome/Chromium binary (optional, auto-detected)")
	scrapeCommand.Flags().BoolVar(&scrapeHeadless, "headless", true, "Run the browser headless")
	scrapeCommand.Flags().StringArrayVar(&scrapeUnitMarkers, "unit-marker", nil, "Unit substring counted toward years-in-unit tenure (repeatable)")
	scrapeCommand.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Print a summary box per scraped person")

	rootCmd.AddCommand(scrapeCommand)
}

func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if scrapeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(scrapeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if scrapeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", scrapeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("input") {
		cfg.Input = scrapeInput
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = scrapeOut
	}
	if cmd.Flags().Changed("search-url") {
		cfg.SearchURL = scrapeSearchURL
	}
	if cmd.Flags().Changed("profile-dir") {
		cfg.ProfileDir = scrapeProfileDir
	}
	if cmd.Flags().Changed("chrome-path") {
		cfg.ChromePath = scrapeChromePath
	}
	if cmd.Flags().Changed("unit-marker") {
		cfg.UnitMarkers = scrapeUnitMarkers
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = &scrapeHeadless
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scrapeVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		OutputDir:  "output",
		ProfileDir: ".browser-profile",
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Input == "" {
		return fmt.Errorf("--input is required (via flag or config)")
	}
	if cfg.SearchURL == "" {
		return fmt.Errorf("--search-url is required (via flag or config)")
	}

	// Step 5: Intranet credentials. An existing browser profile may still
	// hold a live SSO session, so missing credentials are only a warning
	// here; login fails later if the form actually appears.
	creds := config.LoadCredentials()
	if creds.IntranetUsername == "" || creds.IntranetPassword == "" {
		slog.WarnContext(ctx, "INTRANET_USERNAME or INTRANET_PASSWORD not set, relying on saved browser session")
	}

	session, err := directory.NewSession(ctx, directory.SessionOptions{
		Headless:   cfg.HeadlessOr(true),
		ProfileDir: cfg.ProfileDir,
		ExecPath:   cfg.ChromePath,
		SearchURL:  cfg.SearchURL,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	if err := session.Login(ctx, creds.IntranetUsername, creds.IntranetPassword); err != nil {
		return fmt.Errorf("intranet login failed: %w", err)
	}

	result, err := pipeline.RunScrape(ctx, session, pipeline.ScrapeOptions{
		InputPath:   cfg.Input,
		OutputDir:   cfg.OutputDir,
		UnitMarkers: cfg.UnitMarkers,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "scrape run finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"not_found", result.NotFound)
	return nil
}
