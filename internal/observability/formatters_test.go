package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fcidata/staffscraper/internal/types"
)

func TestPrintProfileRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := &types.ProfileRecord{
		Name:                "Jane Doe",
		CurrentUnitName:     "Markets Unit",
		UnitCode:            "ETIRI",
		WorkAndDutyLocation: "Washington, DC",
		UPI:                 "000123",
		YearsInBank:         4.5,
		Skills:              []string{"Trade Policy", "Econometrics"},
		TotalNumberOfAwards: 2,
	}
	rec.Lending.Append("Rural Roads", "P123456", "Active", "FY22")

	p.PrintProfileRecord(rec)
	output := buf.String()

	assert.Contains(t, output, "Profile: Jane Doe")
	assert.Contains(t, output, "ETIRI")
	assert.Contains(t, output, "000123")
	assert.Contains(t, output, "Trade Policy")
	assert.Contains(t, output, "1 lending")
}

func TestPrintProfileRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfileRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProfileRecord_ManySkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := &types.ProfileRecord{Name: "Jane Doe"}
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		rec.Skills = append(rec.Skills, s)
	}

	p.PrintProfileRecord(rec)

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintLinkedInRecord_Found(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLinkedInRecord(&types.LinkedInRecord{
		FullName:        "Jane Doe",
		ProfileURL:      "https://www.linkedin.com/in/janedoe",
		Occupation:      "Economist",
		City:            "Washington",
		CountryFullName: "United States",
		Connections:     412,
		EducationTitles: []string{"MSc Economics"},
	})
	output := buf.String()

	assert.Contains(t, output, "LinkedIn: Jane Doe")
	assert.Contains(t, output, "Economist")
	assert.Contains(t, output, "MSc Economics")
}

func TestPrintLinkedInRecord_NotFound(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLinkedInRecord(&types.LinkedInRecord{FullName: "Jane Doe"})

	assert.Contains(t, buf.String(), "No profile resolved")
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(10, 3, 2)
	output := buf.String()

	assert.Contains(t, output, "Run complete")
	assert.Contains(t, output, "Processed: 10")
	assert.Contains(t, output, "Not found: 2")
}
