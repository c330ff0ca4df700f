// Package pipeline orchestrates the collector → analyzer → decision →
// reporter sequence over one shared state store per run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/patrol-dev/patrol/internal/analyze"
	"github.com/patrol-dev/patrol/internal/collect"
	"github.com/patrol-dev/patrol/internal/config"
	"github.com/patrol-dev/patrol/internal/decide"
	"github.com/patrol-dev/patrol/internal/llm"
	"github.com/patrol-dev/patrol/internal/report"
	"github.com/patrol-dev/patrol/internal/state"
)

// Pipeline runs the four stages in fixed order. Stage order is encoded
// here and nowhere else; a stage invoked out of order fails through the
// store's missing-namespace contract.
type Pipeline struct {
	cfg    *config.Config
	client llm.Client
	logger *slog.Logger
}

// New creates a Pipeline with the given config, capability client and logger.
func New(cfg *config.Config, client llm.Client, logger *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, client: client, logger: logger}
}

// Run executes one end-to-end pass. The state store is created here, lives
// for exactly this run, and is discarded when Run returns. Any stage error
// moves the run to the failed phase and skips every remaining stage.
func (p *Pipeline) Run(ctx context.Context) Result {
	result := Result{
		RunID: uuid.NewString(),
		Phase: PhaseInit,
	}
	log := p.logger.With("run_id", result.RunID)
	start := time.Now()

	st := state.NewStore()

	// Stage 1: collect.
	log.Info("collecting logs", "path", p.cfg.Source.Path)
	if err := collect.Run(st, p.cfg.Source.Path); err != nil {
		return p.fail(log, result, "collector", err, start)
	}
	result.Phase = PhaseCollectorDone
	log.Debug("logs collected", "phase", result.Phase.String())

	// Stage 2: analyze. The only external call of the run.
	log.Info("requesting analysis", "model", p.cfg.LLM.Model)
	if err := analyze.Run(ctx, st, p.client, p.cfg.LLM.Model); err != nil {
		return p.fail(log, result, "analyzer", err, start)
	}
	result.Phase = PhaseAnalyzerDone
	log.Debug("analysis validated", "phase", result.Phase.String())

	// Stage 3: decide.
	log.Info("applying alert threshold")
	if err := decide.Run(st); err != nil {
		return p.fail(log, result, "decision", err, start)
	}
	result.Phase = PhaseDecisionDone
	log.Debug("decision recorded", "phase", result.Phase.String())

	// Stage 4: report.
	log.Info("rendering report")
	rendered, err := report.Run(st, report.Options{
		Template: p.cfg.Report.Template,
		Color:    p.cfg.Report.Color,
	})
	if err != nil {
		return p.fail(log, result, "reporter", err, start)
	}

	result.Phase = PhaseComplete
	result.Report = rendered
	result.Duration = time.Since(start)
	log.Info("run complete", "phase", result.Phase.String(), "duration", result.Duration)
	return result
}

func (p *Pipeline) fail(log *slog.Logger, result Result, stage string, err error, start time.Time) Result {
	result.Phase = PhaseFailed
	result.Err = err
	result.ErrStage = stage
	result.Duration = time.Since(start)
	log.Error("run failed", "stage", stage, "error", err)
	return result
}
