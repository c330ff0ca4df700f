// Package decide implements the pipeline's third stage: the pure severity
// threshold that turns an analysis into an alert decision.
package decide

import (
	"fmt"

	"github.com/patrol-dev/patrol/internal/analyze"
	"github.com/patrol-dev/patrol/internal/state"
)

// Namespace is the store key the decision stage writes under.
const Namespace = "decision"

// AlertNeeded reports whether the severity crosses the alert threshold.
func AlertNeeded(sev analyze.Severity) bool {
	return sev == analyze.SeverityHigh || sev == analyze.SeverityCritical
}

// Run reads the analyzer's record and writes the alert decision together
// with the severity it was derived from. The severity is re-checked against
// the fixed set: the record crosses the store untyped, and an out-of-set
// value must fail loudly rather than default to no-alert.
func Run(st *state.Store) error {
	rec, err := st.Get(analyze.Namespace)
	if err != nil {
		return err
	}

	raw, _ := rec["severity"].(string)
	sev := analyze.Severity(raw)
	if !sev.Valid() {
		return fmt.Errorf("%w: decision stage got severity %q", analyze.ErrMalformedAnalysis, raw)
	}

	return st.Put(Namespace, state.Record{
		"alert_needed": AlertNeeded(sev),
		"severity":     string(sev),
	})
}
