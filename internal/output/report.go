// Package output provides the lint report model and its formatters.
package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/safecfg-dev/safecfg/internal/config"
)

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding kinds, used as SARIF rule IDs.
const (
	KindField     = "field-validation"
	KindStructure = "structure"
	KindRule      = "policy-rule"
)

// Finding is one validation failure in a document.
type Finding struct {
	GroupID  string   `json:"group_id,omitempty" yaml:"group_id,omitempty"`
	Field    string   `json:"field,omitempty" yaml:"field,omitempty"`
	Kind     string   `json:"kind" yaml:"kind"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// DocumentResult holds the findings for one document.
type DocumentResult struct {
	Path     string    `json:"path" yaml:"path"`
	Groups   int       `json:"groups" yaml:"groups"`
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Summary aggregates counts across all documents in a report.
type Summary struct {
	Documents int `json:"documents" yaml:"documents"`
	Groups    int `json:"groups" yaml:"groups"`
	Errors    int `json:"errors" yaml:"errors"`
	Warnings  int `json:"warnings" yaml:"warnings"`
}

// Report is the result of one validation run.
type Report struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	ToolVersion string           `json:"tool_version" yaml:"tool_version"`
	StartTime   time.Time        `json:"start_time" yaml:"start_time"`
	Duration    time.Duration    `json:"duration" yaml:"duration"`
	Documents   []DocumentResult `json:"documents" yaml:"documents"`
	Summary     Summary          `json:"summary" yaml:"summary"`
}

// NewReport starts a report with a fresh run ID.
func NewReport(toolVersion string) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		ToolVersion: toolVersion,
		StartTime:   time.Now(),
	}
}

// AddDocument appends one document result.
func (r *Report) AddDocument(res DocumentResult) {
	r.Documents = append(r.Documents, res)
}

// Finish records the run duration and computes the summary.
func (r *Report) Finish() {
	r.Duration = time.Since(r.StartTime)
	r.Summary = Summary{Documents: len(r.Documents)}
	for _, doc := range r.Documents {
		r.Summary.Groups += doc.Groups
		for _, f := range doc.Findings {
			switch f.Severity {
			case SeverityWarning:
				r.Summary.Warnings++
			default:
				r.Summary.Errors++
			}
		}
	}
}

// HasErrors reports whether any error-severity finding exists.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// FindingFromIssue converts a loader issue into a report finding,
// classifying it by the error kind the builders produced.
func FindingFromIssue(issue config.Issue) Finding {
	f := Finding{
		GroupID:  issue.GroupID,
		Severity: SeverityError,
		Message:  issue.Err.Error(),
	}

	var fieldErr *config.FieldError
	var stateErr *config.StateError
	switch {
	case errors.As(issue.Err, &fieldErr):
		f.Kind = KindField
		f.Field = fieldErr.Field
	case errors.As(issue.Err, &stateErr):
		f.Kind = KindStructure
	default:
		f.Kind = KindStructure
	}
	return f
}

// RuleFinding builds a warning finding for a group that broke a policy rule.
func RuleFinding(groupID, ruleSource string) Finding {
	return Finding{
		GroupID:  groupID,
		Kind:     KindRule,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("group %q breaks rule %q", groupID, ruleSource),
	}
}
