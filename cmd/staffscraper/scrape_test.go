package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "scrape",
		"--search-url", "https://intranet.example.org/people")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--input is required")
}

func TestScrapeCommand_MissingSearchURL(t *testing.T) {
	binaryPath := getBinaryPath(t)

	roster := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(roster, []byte("name\nDoe, Jane\n"), 0644))

	cmd := exec.Command(binaryPath, "scrape", "--input", roster)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--search-url is required")
}

func TestScrapeCommand_ConfigFileProvidesFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	roster := filepath.Join(tmpDir, "staff.csv")
	require.NoError(t, os.WriteFile(roster, []byte("name\nDoe, Jane\n"), 0644))

	cfgFile := filepath.Join(tmpDir, "config.json")
	cfgJSON := `{"input": "` + roster + `", "search_url": "https://intranet.example.org/people"}`
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfgJSON), 0644))

	// With both values supplied by config, the command gets past flag
	// validation and fails later at the browser launch or login stage.
	cmd := exec.Command(binaryPath, "scrape",
		"--config", cfgFile,
		"--profile-dir", filepath.Join(tmpDir, "profile"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.NotContains(t, string(output), "--input is required")
	assert.NotContains(t, string(output), "--search-url is required")
}
