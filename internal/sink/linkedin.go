package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fcidata/staffscraper/internal/types"
)

// linkedinHeader is the fixed column order of the enrichment results CSV.
var linkedinHeader = []string{
	"full_name",
	"linkedin_url",
	"public_identifier",
	"profile_pic_url",
	"background_cover_image_url",
	"first_name",
	"last_name",
	"occupation",
	"headline",
	"summary",
	"country",
	"country_full_name",
	"city",
	"state",
	"experiences",
	"education",
	"languages",
	"accomplishment_projects",
	"certifications",
	"connections",
	"recommendations",
	"activities",
	"similarly_named_profiles",
	"education_titles",
	"external_experiences",
	"raw_data",
}

// WriteLinkedIn rewrites the enrichment CSV at path with the full result
// set. The file is rewritten after every person so a crash loses at most the
// in-flight lookup.
func WriteLinkedIn(path string, records []types.LinkedInRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create linkedin csv %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(linkedinHeader); err != nil {
		return fmt.Errorf("failed to write linkedin csv header: %w", err)
	}
	for i := range records {
		row, err := linkedinRow(&records[i])
		if err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write linkedin csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// LoadLinkedIn reads a previously written enrichment CSV back into records.
// A missing file yields an empty slice.
func LoadLinkedIn(path string) ([]types.LinkedInRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open linkedin csv %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read linkedin csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	var records []types.LinkedInRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read linkedin csv row: %w", err)
		}
		rec, err := linkedinFromRow(row, col)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func linkedinRow(rec *types.LinkedInRecord) ([]string, error) {
	row := make([]string, 0, len(linkedinHeader))
	row = append(row,
		rec.FullName,
		rec.ProfileURL,
		rec.PublicIdentifier,
		rec.ProfilePicURL,
		rec.BackgroundCoverImageURL,
		rec.FirstName,
		rec.LastName,
		rec.Occupation,
		rec.Headline,
		rec.Summary,
		rec.Country,
		rec.CountryFullName,
		rec.City,
		rec.State,
	)

	for _, v := range []any{rec.Experiences, rec.Education} {
		cell, err := jsonCell(v)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
	}
	row = append(row, strings.Join(rec.Languages, ", "))
	for _, v := range []any{rec.AccomplishmentProjects, rec.Certifications} {
		cell, err := jsonCell(v)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
	}
	row = append(row, strconv.Itoa(rec.Connections))
	for _, v := range []any{rec.Recommendations, rec.Activities, rec.SimilarlyNamedProfiles} {
		cell, err := jsonCell(v)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
	}
	row = append(row, strings.Join(rec.EducationTitles, ", "))
	for _, v := range []any{rec.ExternalExperiences, rec.RawData} {
		cell, err := jsonCell(v)
		if err != nil {
			return nil, err
		}
		row = append(row, Truncate(cell))
	}
	return row, nil
}

func jsonCell(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode linkedin cell: %w", err)
	}
	return string(b), nil
}

func linkedinFromRow(row []string, col map[string]int) (types.LinkedInRecord, error) {
	cell := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	splitList := func(name string) []string {
		v := cell(name)
		if v == "" {
			return nil
		}
		return strings.Split(v, ", ")
	}

	rec := types.LinkedInRecord{
		FullName:                cell("full_name"),
		ProfileURL:              cell("linkedin_url"),
		PublicIdentifier:        cell("public_identifier"),
		ProfilePicURL:           cell("profile_pic_url"),
		BackgroundCoverImageURL: cell("background_cover_image_url"),
		FirstName:               cell("first_name"),
		LastName:                cell("last_name"),
		Occupation:              cell("occupation"),
		Headline:                cell("headline"),
		Summary:                 cell("summary"),
		Country:                 cell("country"),
		CountryFullName:         cell("country_full_name"),
		City:                    cell("city"),
		State:                   cell("state"),
		Languages:               splitList("languages"),
		EducationTitles:         splitList("education_titles"),
	}

	if v := cell("connections"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return rec, fmt.Errorf("failed to parse connections for %s: %w", rec.FullName, err)
		}
		rec.Connections = n
	}

	jsonFields := []struct {
		name string
		dst  any
	}{
		{"experiences", &rec.Experiences},
		{"education", &rec.Education},
		{"accomplishment_projects", &rec.AccomplishmentProjects},
		{"certifications", &rec.Certifications},
		{"recommendations", &rec.Recommendations},
		{"activities", &rec.Activities},
		{"similarly_named_profiles", &rec.SimilarlyNamedProfiles},
		{"external_experiences", &rec.ExternalExperiences},
		{"raw_data", &rec.RawData},
	}
	for _, jf := range jsonFields {
		v := cell(jf.name)
		if v == "" || strings.HasSuffix(v, "(truncated)") {
			continue
		}
		if err := json.Unmarshal([]byte(v), jf.dst); err != nil {
			return rec, fmt.Errorf("failed to parse %s cell for %s: %w", jf.name, rec.FullName, err)
		}
	}
	return rec, nil
}
