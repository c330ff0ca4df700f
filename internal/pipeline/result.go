package pipeline

import "time"

// Phase is the orchestrator's position in its fixed stage sequence.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseCollectorDone
	PhaseAnalyzerDone
	PhaseDecisionDone
	PhaseComplete
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseCollectorDone:
		return "collector_done"
	case PhaseAnalyzerDone:
		return "analyzer_done"
	case PhaseDecisionDone:
		return "decision_done"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result captures the outcome of one pipeline run. Errors are stored in
// Err/ErrStage rather than returned, so the caller always has something
// to display.
type Result struct {
	RunID    string
	Phase    Phase
	Report   string // rendered final report, empty when the run failed
	Duration time.Duration
	Err      error
	ErrStage string // "collector", "analyzer", "decision", "reporter"
}
