package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fcidata/staffscraper/internal/observability"
	"github.com/fcidata/staffscraper/internal/roster"
	"github.com/fcidata/staffscraper/internal/sink"
	"github.com/fcidata/staffscraper/internal/types"
)

// LinkedInCSVName is the enrichment results file inside the output directory.
const LinkedInCSVName = "linkedin_results.csv"

// Resolver is the enrichment surface the linkedin pipeline drives.
// *enrich.Client implements it.
type Resolver interface {
	ResolvePerson(ctx context.Context, person types.StaffInput) (*types.LinkedInRecord, error)
}

// LinkedInOptions configures one enrichment run.
type LinkedInOptions struct {
	InputPath string
	OutputDir string
	Verbose   bool
}

// LinkedInResult reports what one run did.
type LinkedInResult struct {
	Processed int
	Skipped   int
	NotFound  int // name-only records: no variation resolved
}

// RunLinkedIn resolves every roster name once. Prior results are reloaded
// for dedup, and the results CSV is rewritten after each person so a crash
// loses at most the in-flight lookup. Resolver errors abort the run: the
// only errors it surfaces are fatal (credential rejection).
func RunLinkedIn(ctx context.Context, resolver Resolver, opts LinkedInOptions) (*LinkedInResult, error) {
	staff, err := roster.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, err
	}
	csvPath := filepath.Join(opts.OutputDir, LinkedInCSVName)

	records, err := sink.LoadLinkedIn(csvPath)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		seen[rec.FullName] = true
	}
	slog.InfoContext(ctx, "loaded prior enrichment results", "already_resolved", len(records), "roster", len(staff))

	var printer *observability.Printer
	if opts.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	result := &LinkedInResult{}
	for _, person := range staff {
		if seen[person.FullName] {
			slog.InfoContext(ctx, "skipping already resolved person", "name", person.FullName)
			result.Skipped++
			continue
		}

		rec, err := resolver.ResolvePerson(ctx, person)
		if err != nil {
			return result, err
		}

		records = append(records, *rec)
		if err := sink.WriteLinkedIn(csvPath, records); err != nil {
			return result, err
		}
		seen[person.FullName] = true

		if rec.Found() {
			result.Processed++
		} else {
			result.NotFound++
		}
		if printer != nil {
			printer.PrintLinkedInRecord(rec)
		}
	}

	if printer != nil {
		printer.PrintRunSummary(result.Processed, result.Skipped, result.NotFound)
	}
	return result, nil
}
