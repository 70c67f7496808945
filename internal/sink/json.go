package sink

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fcidata/staffscraper/internal/types"
)

// AppendProfileJSON appends one record to the JSON array at path, creating
// the file on first write. The whole array is rewritten each time, matching
// the append-per-person cadence of the CSV sink.
func AppendProfileJSON(path string, rec *types.ProfileRecord) error {
	var existing []json.RawMessage

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("failed to parse existing json sink %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// first write
	default:
		return fmt.Errorf("failed to read json sink %s: %w", path, err)
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal profile record: %w", err)
	}
	existing = append(existing, encoded)

	out, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json sink: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write json sink %s: %w", path, err)
	}
	return nil
}
