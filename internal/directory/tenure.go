package directory

import (
	"math"
	"strings"
	"time"
)

const daysPerYear = 365.25

// Tenure summarizes the in-bank work history of one person.
type Tenure struct {
	YearsInCurrentPosition float64
	YearsInUnit            float64
	YearsInBank            float64
	LastPosition           string
	AllPositions           string
}

// ComputeTenure derives tenure figures from bank positions listed most
// recent first, as the profile page renders them. Years-in-unit accumulates
// over positions whose unit matches any of unitMarkers (substring match);
// each position's span runs from its start to the start of the position
// above it, the topmost running to now.
func ComputeTenure(positions []BankPosition, unitMarkers []string, now time.Time) Tenure {
	var t Tenure
	if len(positions) == 0 {
		return t
	}

	var (
		currentStart time.Time
		bankStart    time.Time
		allPositions []string
		nextStart    = now
	)

	for _, pos := range positions {
		if bankStart.IsZero() || pos.Start.Before(bankStart) {
			bankStart = pos.Start
		}
		if matchesUnit(pos.Unit, unitMarkers) {
			t.YearsInUnit += yearsBetween(pos.Start, nextStart)
		}
		if currentStart.IsZero() {
			currentStart = pos.Start
			t.LastPosition = pos.Designation + " - " + pos.Unit
		}
		allPositions = append(allPositions, pos.StartRaw+": "+pos.Designation+" - "+pos.Unit)
		nextStart = pos.Start
	}

	t.YearsInCurrentPosition = yearsBetween(currentStart, now)
	t.YearsInBank = yearsBetween(bankStart, now)
	t.YearsInUnit = round2(t.YearsInUnit)
	t.AllPositions = strings.Join(allPositions, "; ")
	return t
}

func matchesUnit(unit string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(unit, m) {
			return true
		}
	}
	return false
}

func yearsBetween(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	return round2(days / daysPerYear)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
