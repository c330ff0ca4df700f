// Package collect implements the pipeline's first stage: reading the raw
// log source and committing it to the shared store.
package collect

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/patrol-dev/patrol/internal/state"
)

// Namespace is the store key the collector writes under.
const Namespace = "collector"

// ErrSourceUnavailable means the log source could not be read. Nothing
// downstream is meaningful without logs, so this aborts the run.
var ErrSourceUnavailable = errors.New("log source unavailable")

// Batch holds the ordered, non-empty lines read from the source.
// Line order follows file order and is preserved through the run.
type Batch struct {
	Lines []string
	Raw   string
}

// ReadSource reads the file at path and splits it into ordered non-empty
// lines. Blank and whitespace-only lines are dropped.
func ReadSource(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return &Batch{
		Lines: lines,
		Raw:   strings.Join(lines, "\n"),
	}, nil
}

// Run reads the source and writes the collector record into the store.
func Run(st *state.Store, path string) error {
	batch, err := ReadSource(path)
	if err != nil {
		return err
	}

	return st.Put(Namespace, state.Record{
		"raw_logs":   batch.Raw,
		"lines":      batch.Lines,
		"line_count": len(batch.Lines),
	})
}
