package decide

import (
	"errors"
	"testing"

	"github.com/patrol-dev/patrol/internal/analyze"
	"github.com/patrol-dev/patrol/internal/state"
)

func TestAlertNeeded(t *testing.T) {
	tests := []struct {
		severity analyze.Severity
		want     bool
	}{
		{analyze.SeverityLow, false},
		{analyze.SeverityMedium, false},
		{analyze.SeverityHigh, true},
		{analyze.SeverityCritical, true},
	}
	for _, tt := range tests {
		if got := AlertNeeded(tt.severity); got != tt.want {
			t.Errorf("AlertNeeded(%q) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func storeWithAnalysis(t *testing.T, severity string) *state.Store {
	t.Helper()
	st := state.NewStore()
	err := st.Put(analyze.Namespace, state.Record{
		"severity":           severity,
		"root_cause":         "DB outage",
		"summary":            "Service B down",
		"recommended_action": "Restart DB",
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRun(t *testing.T) {
	st := storeWithAnalysis(t, "high")

	if err := Run(st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := st.Get(Namespace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["alert_needed"] != true {
		t.Errorf("alert_needed = %v, want true", rec["alert_needed"])
	}
	if rec["severity"] != "high" {
		t.Errorf("severity = %v, want high (kept for auditability)", rec["severity"])
	}
}

func TestRun_NoAlert(t *testing.T) {
	st := storeWithAnalysis(t, "low")

	if err := Run(st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ := st.Get(Namespace)
	if rec["alert_needed"] != false {
		t.Errorf("alert_needed = %v, want false", rec["alert_needed"])
	}
}

func TestRun_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		st := storeWithAnalysis(t, "critical")
		if err := Run(st); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rec, _ := st.Get(Namespace)
		if rec["alert_needed"] != true {
			t.Fatal("same severity must always yield the same decision")
		}
	}
}

func TestRun_MissingAnalyzer(t *testing.T) {
	st := state.NewStore()
	err := Run(st)
	if !errors.Is(err, state.ErrMissingNamespace) {
		t.Fatalf("error = %v, want ErrMissingNamespace", err)
	}
}

func TestRun_InvalidSeverity(t *testing.T) {
	st := storeWithAnalysis(t, "catastrophic")
	err := Run(st)
	if !errors.Is(err, analyze.ErrMalformedAnalysis) {
		t.Fatalf("error = %v, want ErrMalformedAnalysis", err)
	}
	if st.Has(Namespace) {
		t.Error("decision namespace written despite invalid severity")
	}
}
