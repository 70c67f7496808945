package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/fcidata/staffscraper/internal/types"
)

// AppendNotFound appends a single-name row to the not-found CSV at path.
// The file has no header, matching its role as a plain rerun list.
func AppendNotFound(path string, rec types.NotFoundRecord) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open not-found csv %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{rec.Name}); err != nil {
		return fmt.Errorf("failed to write not-found row: %w", err)
	}
	w.Flush()
	return w.Error()
}
