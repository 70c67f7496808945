package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var unitMarkers = []string{"FCI", "Finance, Competitiveness & Innovation"}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse(startDateLayout, raw)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", raw, err)
	}
	return d
}

func TestComputeTenure(t *testing.T) {
	now := mustDate(t, "Jul 1, 2024")
	positions := []BankPosition{
		{Start: mustDate(t, "Jul 1, 2022"), StartRaw: "Jul 1, 2022", Designation: "Senior Economist", Unit: "FCI - Markets"},
		{Start: mustDate(t, "Jul 1, 2019"), StartRaw: "Jul 1, 2019", Designation: "Economist", Unit: "Finance, Competitiveness & Innovation"},
		{Start: mustDate(t, "Jul 1, 2014"), StartRaw: "Jul 1, 2014", Designation: "Analyst", Unit: "GGOVD"},
	}

	tenure := ComputeTenure(positions, unitMarkers, now)

	assert.InDelta(t, 2.0, tenure.YearsInCurrentPosition, 0.01)
	assert.InDelta(t, 10.0, tenure.YearsInBank, 0.01)
	// unit years: current position (2y) + previous unit position (3y)
	assert.InDelta(t, 5.0, tenure.YearsInUnit, 0.02)
	assert.Equal(t, "Senior Economist - FCI - Markets", tenure.LastPosition)
	assert.Equal(t,
		"Jul 1, 2022: Senior Economist - FCI - Markets; "+
			"Jul 1, 2019: Economist - Finance, Competitiveness & Innovation; "+
			"Jul 1, 2014: Analyst - GGOVD",
		tenure.AllPositions)
}

func TestComputeTenure_NoPositions(t *testing.T) {
	tenure := ComputeTenure(nil, unitMarkers, time.Now())
	assert.Zero(t, tenure.YearsInBank)
	assert.Zero(t, tenure.YearsInCurrentPosition)
	assert.Zero(t, tenure.YearsInUnit)
	assert.Empty(t, tenure.LastPosition)
	assert.Empty(t, tenure.AllPositions)
}

func TestComputeTenure_NoUnitMatch(t *testing.T) {
	now := mustDate(t, "Jan 1, 2024")
	positions := []BankPosition{
		{Start: mustDate(t, "Jan 1, 2020"), StartRaw: "Jan 1, 2020", Designation: "Economist", Unit: "GGOVD"},
	}
	tenure := ComputeTenure(positions, unitMarkers, now)
	assert.Zero(t, tenure.YearsInUnit)
	assert.InDelta(t, 4.0, tenure.YearsInBank, 0.01)
}
