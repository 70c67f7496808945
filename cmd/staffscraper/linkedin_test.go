package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkedInCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "linkedin",
		"--company-domain", "example.org")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--input is required")
}

func TestLinkedInCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	roster := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(roster, []byte("name\nDoe, Jane\n"), 0644))

	cmd := exec.Command(binaryPath, "linkedin",
		"--input", roster,
		"--company-domain", "example.org")

	// Filter out ENRICH_API_KEY so the client refuses to start
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "ENRICH_API_KEY=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "enrichment API key is not set")
}

func TestLinkedInCommand_MissingCompanyDomain(t *testing.T) {
	binaryPath := getBinaryPath(t)

	roster := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(roster, []byte("name\nDoe, Jane\n"), 0644))

	cmd := exec.Command(binaryPath, "linkedin", "--input", roster)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--company-domain is required")
}
