// Package analyze implements the pipeline's second stage: sending the
// collected logs to the text-analysis capability and validating its answer
// into a structured analysis record.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/patrol-dev/patrol/internal/collect"
	"github.com/patrol-dev/patrol/internal/llm"
	"github.com/patrol-dev/patrol/internal/state"
)

// Namespace is the store key the analyzer writes under.
const Namespace = "analyzer"

// ErrMalformedAnalysis means the capability's response could not be used:
// not JSON, missing a required field, or a severity outside the fixed set.
// Defaulting here would falsify downstream alerting, so it never happens.
var ErrMalformedAnalysis = errors.New("malformed analysis response")

// Severity is the ordinal classification of the analysis, lowest to highest.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the four fixed severity values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Analysis is the validated result of one analysis call.
type Analysis struct {
	Severity          Severity
	RootCause         string
	Summary           string
	RecommendedAction string
}

const systemPrompt = "You are an SRE log analyst. Return JSON only, no markdown. " +
	"Analyze the provided service logs and respond with exactly this schema: " +
	`{"severity":"low|medium|high|critical","root_cause":"...","summary":"...","recommended_action":"..."}. ` +
	"Severity reflects the worst problem visible in the logs."

var requiredFields = []string{"severity", "root_cause", "summary", "recommended_action"}

// Run reads the collector's record, makes exactly one capability call, and
// writes the validated analysis record. A missing collector namespace
// propagates state.ErrMissingNamespace.
func Run(ctx context.Context, st *state.Store, client llm.Client, model string) error {
	rec, err := st.Get(collect.Namespace)
	if err != nil {
		return err
	}
	raw, _ := rec["raw_logs"].(string)

	resp, err := client.Chat(ctx, llm.ChatRequest{
		Model:       model,
		Temperature: 0.1,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("analysis request: %w", err)
	}

	analysis, err := ParseResponse(resp.Content)
	if err != nil {
		return err
	}

	return st.Put(Namespace, state.Record{
		"severity":           string(analysis.Severity),
		"root_cause":         analysis.RootCause,
		"summary":            analysis.Summary,
		"recommended_action": analysis.RecommendedAction,
	})
}

// ParseResponse validates the capability's reply against the four-field
// contract. The reply must be a JSON object carrying all four fields as
// strings, with severity in the fixed set.
func ParseResponse(content string) (*Analysis, error) {
	body := extractJSON(content)

	var p fastjson.Parser
	v, err := p.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrMalformedAnalysis, err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", ErrMalformedAnalysis, v.Type())
	}

	fields := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		fv := v.Get(name)
		if fv == nil {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedAnalysis, name)
		}
		if fv.Type() != fastjson.TypeString {
			return nil, fmt.Errorf("%w: field %q is %s, want string", ErrMalformedAnalysis, name, fv.Type())
		}
		fields[name] = string(fv.GetStringBytes())
	}

	sev := Severity(fields["severity"])
	if !sev.Valid() {
		return nil, fmt.Errorf("%w: severity %q is not one of low/medium/high/critical", ErrMalformedAnalysis, fields["severity"])
	}

	return &Analysis{
		Severity:          sev,
		RootCause:         fields["root_cause"],
		Summary:           fields["summary"],
		RecommendedAction: fields["recommended_action"],
	}, nil
}

// extractJSON strips markdown code fences some models wrap around their
// JSON payload, returning the first object between braces.
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}
