// Package destroy tears down tagged infrastructure behind safety checks.
// It is the one mutating surface: hard failures here fail the run.
package destroy

import (
	"fmt"
	"strings"

	"github.com/yairfalse/valvo/types"
)

// Severity indicates how critical a safety block is
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// SafetyCheck is the outcome of one guard evaluated against a target
type SafetyCheck struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Severity Severity `json:"severity"`
	Reason   string   `json:"reason,omitempty"`
}

// Options configure a destruction run
type Options struct {
	// DryRun plans without deleting
	DryRun bool

	// Force skips the required-tags guard
	Force bool

	// AllowProduction overrides the production-environment guard
	AllowProduction bool

	// RequireTags are tag keys every target must carry
	RequireTags []string
}

// OutcomeStatus tracks what happened to one target
type OutcomeStatus string

const (
	StatusPlanned   OutcomeStatus = "planned"
	StatusDestroyed OutcomeStatus = "destroyed"
	StatusBlocked   OutcomeStatus = "blocked"
	StatusSkipped   OutcomeStatus = "skipped"
	StatusFailed    OutcomeStatus = "failed"
)

// Outcome is the per-resource result of a run
type Outcome struct {
	Resource types.Resource `json:"resource"`
	Status   OutcomeStatus  `json:"status"`
	Reason   string         `json:"reason,omitempty"`
	Attempts int            `json:"attempts,omitempty"`
}

// Result aggregates a destruction run
type Result struct {
	Total     int       `json:"total"`
	Planned   int       `json:"planned"`
	Destroyed int       `json:"destroyed"`
	Blocked   int       `json:"blocked"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// HardFailed reports whether any delete failed outright. Blocks and
// skips stay soft.
func (r *Result) HardFailed() bool {
	return r.Failed > 0
}

func (r *Result) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusPlanned:
		r.Planned++
	case StatusDestroyed:
		r.Destroyed++
	case StatusBlocked:
		r.Blocked++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Render produces the Markdown summary table of the run
func (r *Result) Render() string {
	var b strings.Builder
	b.WriteString("## Destruction summary\n\n")

	if r.Total == 0 {
		b.WriteString("No matching resources\n")
		return b.String()
	}

	b.WriteString("| Resource | Type | Outcome | Reason |\n")
	b.WriteString("|----------|------|---------|--------|\n")
	for _, o := range r.Outcomes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", o.Resource.Name, o.Resource.Type, o.Status, o.Reason)
	}

	fmt.Fprintf(&b, "\n%d planned, %d destroyed, %d blocked, %d skipped, %d failed\n",
		r.Planned, r.Destroyed, r.Blocked, r.Skipped, r.Failed)
	return b.String()
}
