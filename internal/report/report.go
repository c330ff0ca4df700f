// Package report implements the pipeline's terminal stage: rendering the
// analysis and alert decision into the human-facing report. It writes
// nothing back into the store; its return value is the run's result.
package report

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/patrol-dev/patrol/internal/analyze"
	"github.com/patrol-dev/patrol/internal/collect"
	"github.com/patrol-dev/patrol/internal/decide"
	"github.com/patrol-dev/patrol/internal/state"
)

// Options controls report rendering.
type Options struct {
	// Template overrides the default report template when non-empty.
	Template string
	// Color is "auto", "always" or "never". Auto enables styling only when
	// stdout is a terminal, so piped output stays byte-stable.
	Color string
}

// Data is what the report template sees.
type Data struct {
	AlertNeeded       bool
	Severity          string
	RootCause         string
	Summary           string
	RecommendedAction string
	LineCount         int
}

const defaultTemplate = `{{ banner }}
Severity:            {{ .Severity }}
Root cause:          {{ .RootCause }}
Summary:             {{ .Summary }}
Recommended action:  {{ .RecommendedAction }}

Analyzed {{ .LineCount }} log line{{ if ne .LineCount 1 }}s{{ end }}.
`

const (
	alertBanner   = "\U0001f6a8 ALERT: immediate attention required"
	healthyBanner = "✅ All systems healthy"
)

var (
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	healthyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// Run reads the collector, analyzer and decision records and renders the
// final report. A missing upstream namespace propagates
// state.ErrMissingNamespace; that means the stages ran out of order.
func Run(st *state.Store, opts Options) (string, error) {
	collected, err := st.Get(collect.Namespace)
	if err != nil {
		return "", err
	}
	analysis, err := st.Get(analyze.Namespace)
	if err != nil {
		return "", err
	}
	decision, err := st.Get(decide.Namespace)
	if err != nil {
		return "", err
	}

	lineCount, _ := collected["line_count"].(int)
	alertNeeded, _ := decision["alert_needed"].(bool)
	data := Data{
		AlertNeeded:       alertNeeded,
		Severity:          stringField(analysis, "severity"),
		RootCause:         stringField(analysis, "root_cause"),
		Summary:           stringField(analysis, "summary"),
		RecommendedAction: stringField(analysis, "recommended_action"),
		LineCount:         lineCount,
	}

	return Render(templateFor(opts), data, colorEnabled(opts))
}

// Render executes a report template with Sprig functions plus the banner
// accessor, so {{ banner }} yields the status line for the decision.
func Render(tmplStr string, data Data, color bool) (string, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["banner"] = func() string { return banner(data.AlertNeeded, color) }

	t, err := template.New("report").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}
	return buf.String(), nil
}

func banner(alertNeeded, color bool) string {
	if alertNeeded {
		if color {
			return alertStyle.Render(alertBanner)
		}
		return alertBanner
	}
	if color {
		return healthyStyle.Render(healthyBanner)
	}
	return healthyBanner
}

func templateFor(opts Options) string {
	if opts.Template != "" {
		return opts.Template
	}
	return defaultTemplate
}

func colorEnabled(opts Options) bool {
	switch opts.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}

func stringField(rec state.Record, key string) string {
	v, _ := rec[key].(string)
	return v
}
