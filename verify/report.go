// Package verify checks that deployed Azure resources exist and answer.
// A completed run never fails the process; findings are reported and the
// exit stays clean.
package verify

import (
	"fmt"
	"strings"
)

// Status is the outcome of a single verification check
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusMissing  Status = "missing"
)

// CheckResult is one verification finding
type CheckResult struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Report collects the findings of one verification run
type Report struct {
	ResourceGroup string        `json:"resource_group"`
	Results       []CheckResult `json:"results"`
}

// Healthy reports whether every check passed
func (r Report) Healthy() bool {
	for _, res := range r.Results {
		if res.Status != StatusHealthy {
			return false
		}
	}
	return true
}

// Render produces the Markdown summary of the run
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Deployment verification: %s\n\n", r.ResourceGroup)

	if len(r.Results) == 0 {
		b.WriteString("No checks requested\n")
		return b.String()
	}

	healthy := 0
	for _, res := range r.Results {
		if res.Status == StatusHealthy {
			healthy++
		}
		fmt.Fprintf(&b, "%s %s: %s\n", statusGlyph(res.Status), res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d of %d checks healthy\n", healthy, len(r.Results))
	return b.String()
}

func statusGlyph(s Status) string {
	if s == StatusHealthy {
		return "✅"
	}
	return "⚠️"
}
