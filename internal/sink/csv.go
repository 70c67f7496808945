// Package sink provides the append-only output files shared by both
// pipelines: profile CSV/JSON sinks, the not-found list, the LinkedIn
// results CSV, and the dedup tracker that makes reruns resumable.
package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fcidata/staffscraper/internal/types"
)

// MaxCellRunes caps the size of a single CSV cell. Longer values are cut and
// suffixed so spreadsheet tools don't choke on multi-megabyte cells.
const MaxCellRunes = 32000

const truncationSuffix = "... (truncated)"

// profileHeader is the fixed column order of the profile CSV. The first
// column must stay "name": the dedup tracker keys on it.
var profileHeader = []string{
	"name",
	"official_unit_name",
	"current_unit_name",
	"unit_code",
	"work_and_duty_location",
	"room_number",
	"url",
	"upi",
	"years_in_current_position",
	"years_in_unit",
	"years_in_bank",
	"last_position",
	"all_positions",
	"pre_bank_experience",
	"formal_education",
	"documents_and_reports",
	"document_ids",
	"areas_of_expertise",
	"skills",
	"languages",
	"list_of_awards",
	"total_number_of_awards",
	"lending_projects",
	"non_lending_projects",
	"ifc_projects",
	"all_projects",
}

// AppendProfile appends one record to the profile CSV at path, writing the
// header first if the file does not exist yet.
func AppendProfile(path string, rec *types.ProfileRecord) error {
	row, err := profileRow(rec)
	if err != nil {
		return err
	}
	return appendRow(path, profileHeader, row)
}

func appendRow(path string, header, row []string) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// profileRow flattens a ProfileRecord into cells in profileHeader order.
// Slice and struct fields become JSON-encoded cells so downstream tools can
// re-parse them; every cell is truncated to MaxCellRunes.
func profileRow(rec *types.ProfileRecord) ([]string, error) {
	values := []any{
		rec.Name,
		rec.OfficialUnitName,
		rec.CurrentUnitName,
		rec.UnitCode,
		rec.WorkAndDutyLocation,
		rec.RoomNumber,
		rec.URL,
		rec.UPI,
		rec.YearsInCurrentPosition,
		rec.YearsInUnit,
		rec.YearsInBank,
		rec.LastPosition,
		rec.AllPositions,
		rec.PreBankExperience,
		rec.FormalEducation,
		rec.DocumentsAndReports,
		rec.DocumentIDs,
		rec.AreasOfExpertise,
		rec.Skills,
		rec.Languages,
		rec.ListOfAwards,
		rec.TotalNumberOfAwards,
		rec.Lending,
		rec.NonLending,
		rec.IFC,
		rec.AllProjects,
	}

	row := make([]string, len(values))
	for i, v := range values {
		cell, err := encodeCell(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode column %q: %w", profileHeader[i], err)
		}
		row[i] = Truncate(cell)
	}
	return row, nil
}

func encodeCell(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// Truncate cuts s to MaxCellRunes and marks the cut.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxCellRunes {
		return s
	}
	return string(runes[:MaxCellRunes]) + truncationSuffix
}

// ProfileHeader returns a copy of the profile CSV column order.
func ProfileHeader() []string {
	out := make([]string, len(profileHeader))
	copy(out, profileHeader)
	return out
}
