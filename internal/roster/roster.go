// Package roster loads the staff-name input CSV and normalizes names for
// directory search and enrichment lookup.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/fcidata/staffscraper/internal/types"
)

// Load reads the roster CSV at path. The first column holds names in
// "Last, First" form; the header row is skipped. Blank rows are dropped.
func Load(path string) ([]types.StaffInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}

	var staff []types.StaffInput
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		raw := strings.TrimSpace(row[0])
		if raw == "" {
			continue
		}
		staff = append(staff, Parse(raw))
	}
	return staff, nil
}

// Parse converts a raw roster name into a StaffInput. Names are expected as
// "Last, First"; a name without a comma is treated as already "First Last"
// with the final token as the last name.
func Parse(raw string) types.StaffInput {
	raw = strings.TrimSpace(raw)

	if last, first, ok := strings.Cut(raw, ","); ok {
		last = strings.TrimSpace(last)
		first = strings.TrimSpace(first)
		return types.StaffInput{
			FullName: strings.TrimSpace(first + " " + last),
			First:    first,
			Last:     last,
		}
	}

	tokens := strings.Fields(raw)
	if len(tokens) < 2 {
		return types.StaffInput{FullName: raw, First: raw}
	}
	return types.StaffInput{
		FullName: raw,
		First:    strings.Join(tokens[:len(tokens)-1], " "),
		Last:     tokens[len(tokens)-1],
	}
}

// NameVariation is one (first, last) candidate for enrichment lookup.
type NameVariation struct {
	First string
	Last  string
}

// Variations returns the deduplicated (first, last) combinations to try
// against the enrichment API, from most to least specific: full names, then
// single-token first, single-token last, and both single-token.
func Variations(s types.StaffInput) []NameVariation {
	firstToken := firstField(s.First)
	lastToken := firstField(s.Last)

	candidates := []NameVariation{
		{First: s.First, Last: s.Last},
		{First: firstToken, Last: s.Last},
		{First: s.First, Last: lastToken},
		{First: firstToken, Last: lastToken},
	}

	seen := make(map[NameVariation]bool, len(candidates))
	var out []NameVariation
	for _, c := range candidates {
		if c.First == "" || c.Last == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
