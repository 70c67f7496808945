// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fcidata/staffscraper/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfileRecord outputs a human-readable summary of one scraped profile.
func (p *Printer) PrintProfileRecord(rec *types.ProfileRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Unit:      %s (%s)\n", rec.CurrentUnitName, rec.UnitCode))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", rec.WorkAndDutyLocation))
	sb.WriteString(fmt.Sprintf("UPI:       %s\n", rec.UPI))
	sb.WriteString(fmt.Sprintf("Tenure:    %.2fy bank, %.2fy unit, %.2fy current\n",
		rec.YearsInBank, rec.YearsInUnit, rec.YearsInCurrentPosition))
	sb.WriteString("\n")

	if len(rec.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(rec.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.Skills[i]))
		}
		if len(rec.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education: %d entries\n", len(rec.FormalEducation)))
	sb.WriteString(fmt.Sprintf("Documents: %d entries\n", len(rec.DocumentsAndReports)))
	sb.WriteString(fmt.Sprintf("Projects:  %d lending, %d non-lending, %d IFC\n",
		rec.Lending.Len(), rec.NonLending.Len(), rec.IFC.Len()))
	sb.WriteString(fmt.Sprintf("Awards:    %d", rec.TotalNumberOfAwards))

	p.printBox(fmt.Sprintf("Profile: %s", rec.Name), sb.String())
}

// PrintLinkedInRecord outputs a human-readable summary of one enrichment result.
func (p *Printer) PrintLinkedInRecord(rec *types.LinkedInRecord) {
	if rec == nil {
		return
	}

	title := fmt.Sprintf("LinkedIn: %s", rec.FullName)

	if !rec.Found() {
		p.printBox(title, "No profile resolved for any name variation")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:         %s\n", rec.ProfileURL))
	sb.WriteString(fmt.Sprintf("Occupation:  %s\n", rec.Occupation))
	sb.WriteString(fmt.Sprintf("Location:    %s, %s\n", rec.City, rec.CountryFullName))
	sb.WriteString(fmt.Sprintf("Connections: %d\n", rec.Connections))
	sb.WriteString(fmt.Sprintf("Experience:  %d positions (%d external)\n",
		len(rec.Experiences), len(rec.ExternalExperiences)))

	if len(rec.EducationTitles) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(rec.EducationTitles), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.EducationTitles[i]))
		}
		if len(rec.EducationTitles) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.EducationTitles)-maxItemsToShow))
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the final counters of a pipeline run.
func (p *Printer) PrintRunSummary(processed, skipped, notFound int) {
	content := fmt.Sprintf("Processed: %d\nSkipped:   %d\nNot found: %d", processed, skipped, notFound)
	p.printBox("Run complete", content)
}
