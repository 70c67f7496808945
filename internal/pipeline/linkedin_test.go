package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcidata/staffscraper/internal/enrich"
	"github.com/fcidata/staffscraper/internal/sink"
	"github.com/fcidata/staffscraper/internal/types"
)

type fakeResolver struct {
	// names that resolve to a profile
	resolvable map[string]bool
	err        error
	calls      []string
}

func (f *fakeResolver) ResolvePerson(_ context.Context, person types.StaffInput) (*types.LinkedInRecord, error) {
	f.calls = append(f.calls, person.FullName)
	if f.err != nil {
		return nil, f.err
	}
	rec := &types.LinkedInRecord{FullName: person.FullName}
	if f.resolvable[person.FullName] {
		rec.ProfileURL = "https://www.linkedin.com/in/someone"
	}
	return rec, nil
}

func TestRunLinkedIn_OneRecordPerName(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Doe, Jane", "Ghost, Casper")
	resolver := &fakeResolver{resolvable: map[string]bool{"Jane Doe": true}}

	result, err := RunLinkedIn(context.Background(), resolver, LinkedInOptions{
		InputPath: input,
		OutputDir: dir,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.NotFound)

	records, err := sink.LoadLinkedIn(filepath.Join(dir, LinkedInCSVName))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Found())
	assert.False(t, records[1].Found())
}

func TestRunLinkedIn_RerunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Doe, Jane")
	opts := LinkedInOptions{InputPath: input, OutputDir: dir}

	_, err := RunLinkedIn(context.Background(), &fakeResolver{resolvable: map[string]bool{"Jane Doe": true}}, opts)
	require.NoError(t, err)

	rerun := &fakeResolver{}
	result, err := RunLinkedIn(context.Background(), rerun, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, rerun.calls, "already resolved people must not be re-fetched")

	records, err := sink.LoadLinkedIn(filepath.Join(dir, LinkedInCSVName))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRunLinkedIn_AuthErrorAborts(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Doe, Jane", "Roe, John")
	resolver := &fakeResolver{err: &enrich.AuthError{StatusCode: 401}}

	_, err := RunLinkedIn(context.Background(), resolver, LinkedInOptions{InputPath: input, OutputDir: dir})
	require.Error(t, err)

	var authErr *enrich.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Len(t, resolver.calls, 1, "run must stop on the first credential rejection")
}
