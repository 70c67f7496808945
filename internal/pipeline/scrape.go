// Package pipeline provides the per-person orchestration for the intranet
// and enrichment scrapers: load roster, gate on the dedup tracker, process
// one person end to end, append to the sinks.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fcidata/staffscraper/internal/directory"
	"github.com/fcidata/staffscraper/internal/observability"
	"github.com/fcidata/staffscraper/internal/roster"
	"github.com/fcidata/staffscraper/internal/sink"
	"github.com/fcidata/staffscraper/internal/types"
)

// Output file names inside the output directory.
const (
	ProfileCSVName  = "persons_profiles.csv"
	ProfileJSONName = "persons_profiles.json"
	NotFoundCSVName = "persons_not_found.csv"
	PhotoDirName    = "photos"
)

// ProfileScraper is the browser-backed surface the scrape pipeline drives.
// *directory.Session implements it; tests substitute fakes.
type ProfileScraper interface {
	Locate(ctx context.Context, name string) (string, error)
	Extract(ctx context.Context, name string, unitMarkers []string) (*types.ProfileRecord, error)
	ScrapeProjects(ctx context.Context, name string) (lending, nonLending, ifc types.ProjectList)
	SavePhoto(ctx context.Context, dir, upi string) error
}

// ScrapeOptions configures one intranet scrape run.
type ScrapeOptions struct {
	InputPath   string
	OutputDir   string
	UnitMarkers []string
	Verbose     bool
}

// ScrapeResult reports what one run did.
type ScrapeResult struct {
	Processed int // records written this run
	Skipped   int // already in prior output
	NotFound  int
}

// RunScrape processes every roster name once: skip if already scraped,
// otherwise locate, extract, save the photo, and append to the CSV and JSON
// sinks. A person that cannot be located or extracted is recorded as
// not-found; only sink failures abort the run, since continuing would lose
// records silently.
func RunScrape(ctx context.Context, scraper ProfileScraper, opts ScrapeOptions) (*ScrapeResult, error) {
	staff, err := roster.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, err
	}
	csvPath := filepath.Join(opts.OutputDir, ProfileCSVName)
	jsonPath := filepath.Join(opts.OutputDir, ProfileJSONName)
	notFoundPath := filepath.Join(opts.OutputDir, NotFoundCSVName)
	photoDir := filepath.Join(opts.OutputDir, PhotoDirName)

	tracker, err := sink.LoadTracker(csvPath, "name")
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "loaded prior output", "already_scraped", tracker.Len(), "roster", len(staff))

	var printer *observability.Printer
	if opts.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	result := &ScrapeResult{}
	for _, person := range staff {
		if tracker.Seen(person.FullName) {
			slog.InfoContext(ctx, "skipping already scraped person", "name", person.FullName)
			result.Skipped++
			continue
		}

		rec, found, err := scrapeOne(ctx, scraper, person.FullName, opts.UnitMarkers, photoDir)
		if err != nil {
			return result, err
		}
		if !found {
			if err := sink.AppendNotFound(notFoundPath, types.NotFoundRecord{Name: person.FullName}); err != nil {
				return result, err
			}
			// In-memory only. The tracker reloads from the profiles CSV,
			// so not-found names are retried on the next run.
			tracker.Add(person.FullName)
			result.NotFound++
			continue
		}

		if err := sink.AppendProfile(csvPath, rec); err != nil {
			return result, err
		}
		if err := sink.AppendProfileJSON(jsonPath, rec); err != nil {
			return result, err
		}
		tracker.Add(person.FullName)
		result.Processed++

		if printer != nil {
			printer.PrintProfileRecord(rec)
		}
	}

	if printer != nil {
		printer.PrintRunSummary(result.Processed, result.Skipped, result.NotFound)
	}
	return result, nil
}

// scrapeOne runs the locate, extract, projects and photo sequence for one
// person. found=false means the person should be recorded as not-found.
func scrapeOne(ctx context.Context, scraper ProfileScraper, name string, unitMarkers []string, photoDir string) (*types.ProfileRecord, bool, error) {
	profileURL, err := scraper.Locate(ctx, name)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			slog.InfoContext(ctx, "person not found in directory", "name", name)
		} else {
			slog.WarnContext(ctx, "failed to locate person", "name", name, "err", err)
		}
		return nil, false, nil
	}
	slog.InfoContext(ctx, "located profile", "name", name, "url", profileURL)

	rec, err := scraper.Extract(ctx, name, unitMarkers)
	if err != nil {
		slog.WarnContext(ctx, "failed to extract profile", "name", name, "err", err)
		return nil, false, nil
	}

	lending, nonLending, ifc := scraper.ScrapeProjects(ctx, name)
	rec.Lending = lending
	rec.NonLending = nonLending
	rec.IFC = ifc
	rec.AllProjects = types.Concat(lending, nonLending, ifc)

	if err := scraper.SavePhoto(ctx, photoDir, rec.UPI); err != nil {
		// the record is still worth keeping
		slog.WarnContext(ctx, "failed to save profile photo", "name", name, "upi", rec.UPI, "err", err)
	}

	return rec, true, nil
}
