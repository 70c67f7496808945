package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcidata/staffscraper/internal/types"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRoster(t, "Name (Full)\n\"Doe, Jane\"\n\n\"van der Berg, Anna Maria\"\n")

	staff, err := Load(path)
	require.NoError(t, err)
	require.Len(t, staff, 2)

	assert.Equal(t, "Jane Doe", staff[0].FullName)
	assert.Equal(t, "Jane", staff[0].First)
	assert.Equal(t, "Doe", staff[0].Last)

	assert.Equal(t, "Anna Maria van der Berg", staff[1].FullName)
	assert.Equal(t, "Anna Maria", staff[1].First)
	assert.Equal(t, "van der Berg", staff[1].Last)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open roster")
}

func TestParse_NoComma(t *testing.T) {
	s := Parse("Jane Q Doe")
	assert.Equal(t, "Jane Q Doe", s.FullName)
	assert.Equal(t, "Jane Q", s.First)
	assert.Equal(t, "Doe", s.Last)
}

func TestVariations(t *testing.T) {
	tests := []struct {
		name  string
		input types.StaffInput
		want  []NameVariation
	}{
		{
			name:  "multi-token first and last",
			input: types.StaffInput{First: "Anna Maria", Last: "van der Berg"},
			want: []NameVariation{
				{First: "Anna Maria", Last: "van der Berg"},
				{First: "Anna", Last: "van der Berg"},
				{First: "Anna Maria", Last: "van"},
				{First: "Anna", Last: "van"},
			},
		},
		{
			name:  "single tokens collapse to one variation",
			input: types.StaffInput{First: "Jane", Last: "Doe"},
			want:  []NameVariation{{First: "Jane", Last: "Doe"}},
		},
		{
			name:  "missing last name yields nothing",
			input: types.StaffInput{First: "Cher"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Variations(tt.input))
		})
	}
}
