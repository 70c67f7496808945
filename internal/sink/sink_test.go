package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcidata/staffscraper/internal/types"
)

func sampleRecord(name string) *types.ProfileRecord {
	rec := &types.ProfileRecord{
		Name:                name,
		OfficialUnitName:    "Trade & Competitiveness",
		UnitCode:            "ETIRI",
		URL:                 "https://intranet.example.org/people/profile/000123",
		UPI:                 "000123",
		YearsInBank:         4.5,
		LastPosition:        "Economist - ETIRI",
		TotalNumberOfAwards: 2,
		Skills:              []string{"Trade Policy", "Econometrics"},
		Languages:           []types.Language{{Language: "French", Level: "Fluent"}},
	}
	rec.Lending.Append("Rural Roads", "P123456", "Active", "FY22")
	rec.AllProjects = types.Concat(rec.Lending, rec.NonLending, rec.IFC)
	return rec
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppendProfile_HeaderOnCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.csv")

	require.NoError(t, AppendProfile(path, sampleRecord("Jane Doe")))
	require.NoError(t, AppendProfile(path, sampleRecord("John Roe")))

	rows := readCSV(t, path)
	require.Len(t, rows, 3) // header + 2 records
	assert.Equal(t, ProfileHeader(), rows[0])
	assert.Equal(t, "Jane Doe", rows[1][0])
	assert.Equal(t, "John Roe", rows[2][0])

	// list columns are JSON-parseable
	byName := make(map[string]string, len(rows[0]))
	for i, h := range rows[0] {
		byName[h] = rows[1][i]
	}
	var skills []string
	require.NoError(t, json.Unmarshal([]byte(byName["skills"]), &skills))
	assert.Equal(t, []string{"Trade Policy", "Econometrics"}, skills)
}

func TestAppendProfile_FloatAndIntCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.csv")
	require.NoError(t, AppendProfile(path, sampleRecord("Jane Doe")))

	rows := readCSV(t, path)
	header := rows[0]
	byName := make(map[string]string, len(header))
	for i, h := range header {
		byName[h] = rows[1][i]
	}
	assert.Equal(t, "4.5", byName["years_in_bank"])
	assert.Equal(t, "0", byName["years_in_unit"])
	assert.Equal(t, "2", byName["total_number_of_awards"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short"))

	long := strings.Repeat("x", MaxCellRunes+10)
	got := Truncate(long)
	assert.Len(t, got, MaxCellRunes+len("... (truncated)"))
	assert.True(t, strings.HasSuffix(got, "... (truncated)"))
}

func TestAppendProfileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	require.NoError(t, AppendProfileJSON(path, sampleRecord("Jane Doe")))
	require.NoError(t, AppendProfileJSON(path, sampleRecord("John Roe")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []types.ProfileRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Jane Doe", records[0].Name)
	assert.Equal(t, "John Roe", records[1].Name)
	assert.Equal(t, 1, records[0].Lending.Len())
}

func TestAppendProfileJSON_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	err := AppendProfileJSON(path, sampleRecord("Jane Doe"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse existing json sink")
}

func TestLoadTracker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.csv")

	t.Run("missing file is empty", func(t *testing.T) {
		tracker, err := LoadTracker(path, "name")
		require.NoError(t, err)
		assert.Equal(t, 0, tracker.Len())
		assert.False(t, tracker.Seen("Jane Doe"))
	})

	require.NoError(t, AppendProfile(path, sampleRecord("Jane Doe")))

	t.Run("prior rows are seen", func(t *testing.T) {
		tracker, err := LoadTracker(path, "name")
		require.NoError(t, err)
		assert.True(t, tracker.Seen("Jane Doe"))
		assert.False(t, tracker.Seen("John Roe"))

		tracker.Add("John Roe")
		assert.True(t, tracker.Seen("John Roe"))
	})

	t.Run("missing column errors", func(t *testing.T) {
		_, err := LoadTracker(path, "bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no "bogus" column`)
	})
}

func TestAppendNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_found.csv")

	require.NoError(t, AppendNotFound(path, types.NotFoundRecord{Name: "Jane Doe"}))
	require.NoError(t, AppendNotFound(path, types.NotFoundRecord{Name: "John Roe"}))

	rows := readCSV(t, path)
	assert.Equal(t, [][]string{{"Jane Doe"}, {"John Roe"}}, rows)
}

func TestLinkedInRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkedin_results.csv")

	records := []types.LinkedInRecord{
		{
			FullName:         "Jane Doe",
			ProfileURL:       "https://www.linkedin.com/in/janedoe",
			PublicIdentifier: "janedoe",
			Occupation:       "Economist",
			Languages:        []string{"English", "French"},
			Connections:      412,
			Experiences: []types.LinkedInExperience{
				{Company: "Acme Corp", Title: "Analyst"},
			},
			EducationTitles: []string{"MSc Economics"},
		},
		{FullName: "John Roe"}, // not found: name-only record
	}

	require.NoError(t, WriteLinkedIn(path, records))

	loaded, err := LoadLinkedIn(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, records[0].FullName, loaded[0].FullName)
	assert.Equal(t, records[0].ProfileURL, loaded[0].ProfileURL)
	assert.Equal(t, records[0].Languages, loaded[0].Languages)
	assert.Equal(t, records[0].Connections, loaded[0].Connections)
	assert.Equal(t, records[0].Experiences, loaded[0].Experiences)
	assert.False(t, loaded[1].Found())
}

func TestLoadLinkedIn_MissingFile(t *testing.T) {
	loaded, err := LoadLinkedIn(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestWriteLinkedIn_RewritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkedin_results.csv")

	require.NoError(t, WriteLinkedIn(path, []types.LinkedInRecord{{FullName: "Jane Doe"}}))
	require.NoError(t, WriteLinkedIn(path, []types.LinkedInRecord{
		{FullName: "Jane Doe"},
		{FullName: "John Roe"},
	}))

	rows := readCSV(t, path)
	require.Len(t, rows, 3) // header rewritten once, two records
	assert.Equal(t, "full_name", rows[0][0])
}
