package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Tracker remembers which names are already present in a prior output file,
// so reruns skip completed people instead of re-fetching them.
type Tracker struct {
	seen map[string]bool
}

// LoadTracker builds a Tracker from the CSV at path, keying on the given
// header column. A missing file yields an empty tracker: the first run has
// no prior output.
func LoadTracker(path, column string) (*Tracker, error) {
	t := &Tracker{seen: make(map[string]bool)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open prior output %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prior output header: %w", err)
	}

	idx := -1
	for i, col := range header {
		if col == column {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("prior output %s has no %q column", path, column)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read prior output row: %w", err)
		}
		if idx < len(row) && row[idx] != "" {
			t.seen[row[idx]] = true
		}
	}
	return t, nil
}

// Seen reports whether name was present in the prior output.
func (t *Tracker) Seen(name string) bool { return t.seen[name] }

// Add marks a name as written during this run.
func (t *Tracker) Add(name string) { t.seen[name] = true }

// Len returns the number of tracked names.
func (t *Tracker) Len() int { return len(t.seen) }
