// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Default unit markers: a position counts toward years-in-unit tenure when
// its unit contains one of these.
var defaultUnitMarkers = []string{"FCI", "Finance, Competitiveness & Innovation"}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags. Credentials never live here, only in the environment.
type Config struct {
	// Paths
	Input     string `json:"input,omitempty"`      // Path to roster CSV
	OutputDir string `json:"output_dir,omitempty"` // Directory for CSV/JSON/photo output

	// Intranet
	SearchURL   string   `json:"search_url,omitempty" validate:"omitempty,url"` // People directory search page
	ProfileDir  string   `json:"profile_dir,omitempty"`                         // Persistent browser profile directory
	ChromePath  string   `json:"chrome_path,omitempty"`                         // Chrome/Chromium binary, empty for auto-detect
	UnitMarkers []string `json:"unit_markers,omitempty"`                        // Unit substrings counted for tenure

	// Enrichment
	EnrichBaseURL string `json:"enrich_base_url,omitempty" validate:"omitempty,url"` // Enrichment API base URL
	CompanyDomain string `json:"company_domain,omitempty" validate:"omitempty,fqdn"` // Employer domain passed to lookups
	Employer      string `json:"employer,omitempty"`                                 // Employer name, filters external experience

	// Behavior
	// Headless is a pointer so a config file's explicit false can be told
	// apart from the field being absent.
	Headless *bool `json:"headless,omitempty"` // Run the browser headless
	Verbose  bool  `json:"verbose,omitempty"`  // Print per-person summaries
}

// HeadlessOr returns the configured headless value, or fallback when the
// config file never set one.
func (c *Config) HeadlessOr(fallback bool) bool {
	if c.Headless == nil {
		return fallback
	}
	return *c.Headless
}

// Credentials are environment-only secrets. Which of them are required
// depends on the command; callers check the fields they need.
type Credentials struct {
	IntranetUsername string
	IntranetPassword string
	EnrichAPIKey     string
}

// LoadCredentials reads credentials from the environment.
func LoadCredentials() Credentials {
	return Credentials{
		IntranetUsername: os.Getenv("INTRANET_USERNAME"),
		IntranetPassword: os.Getenv("INTRANET_PASSWORD"),
		EnrichAPIKey:     os.Getenv("ENRICH_API_KEY"),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field formats and that referenced files exist.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: field %q fails %q validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config validation: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.SearchURL == "" {
		result.SearchURL = defaults.SearchURL
	}
	if result.ProfileDir == "" {
		result.ProfileDir = defaults.ProfileDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.EnrichBaseURL == "" {
		result.EnrichBaseURL = defaults.EnrichBaseURL
	}
	if result.CompanyDomain == "" {
		result.CompanyDomain = defaults.CompanyDomain
	}
	if result.Employer == "" {
		result.Employer = defaults.Employer
	}

	// Slice fields: use default if empty, then the built-in fallback
	if len(result.UnitMarkers) == 0 {
		result.UnitMarkers = defaults.UnitMarkers
	}
	if len(result.UnitMarkers) == 0 {
		result.UnitMarkers = defaultUnitMarkers
	}

	if result.Headless == nil {
		result.Headless = defaults.Headless
	}

	// Plain bool fields: cannot distinguish unset from false, so we don't
	// merge (CLI flags should always win for them)

	return result
}
