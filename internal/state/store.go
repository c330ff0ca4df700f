// Package state implements the shared store that carries stage results
// through a single pipeline run. Each stage writes exactly one record under
// its own namespace; written records are never overwritten or mutated.
package state

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateNamespace means a stage tried to write a namespace that
	// already holds a record. Write-once is the store's core discipline.
	ErrDuplicateNamespace = errors.New("namespace already written")

	// ErrMissingNamespace means a stage read a namespace before its
	// dependency wrote it, i.e. the stages ran out of order.
	ErrMissingNamespace = errors.New("namespace not written")
)

// Record is one stage's result: an open-ended field→value mapping.
type Record map[string]any

// Store maps stage namespaces to their result records for one run.
// It is created empty at run start and discarded when the run ends;
// there is no delete operation.
type Store struct {
	records map[string]Record
}

// NewStore creates an empty store for a single pipeline run.
func NewStore() *Store {
	return &Store{records: make(map[string]Record)}
}

// Put stores a record under the given namespace. A second Put to the same
// namespace fails with ErrDuplicateNamespace. The record is cloned, so the
// caller keeping a reference cannot mutate what was committed.
func (s *Store) Put(namespace string, rec Record) error {
	if _, ok := s.records[namespace]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNamespace, namespace)
	}
	s.records[namespace] = cloneRecord(rec)
	return nil
}

// Get returns the record stored under the given namespace, or
// ErrMissingNamespace if it was never written. The returned record is a
// clone; readers cannot mutate the committed state.
func (s *Store) Get(namespace string) (Record, error) {
	rec, ok := s.records[namespace]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingNamespace, namespace)
	}
	return cloneRecord(rec), nil
}

// Has reports whether the namespace holds a record.
func (s *Store) Has(namespace string) bool {
	_, ok := s.records[namespace]
	return ok
}

// All returns a snapshot of every namespace and its record.
func (s *Store) All() map[string]Record {
	out := make(map[string]Record, len(s.records))
	for ns, rec := range s.records {
		out[ns] = cloneRecord(rec)
	}
	return out
}

// cloneRecord copies the record map and any string-slice values. Records
// hold strings, numbers, bools and []string; that is deep enough to keep
// one stage from mutating another stage's committed record.
func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if lines, ok := v.([]string); ok {
			cp := make([]string, len(lines))
			copy(cp, lines)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}
