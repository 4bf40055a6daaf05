// Package report renders policy compliance as Markdown for CI summaries.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yairfalse/valvo/types"
)

// ResourceLister fetches the failing resources of one assignment
type ResourceLister interface {
	NonCompliantResources(ctx context.Context, resourceGroup, assignmentName string) []types.NonCompliantResource
}

// Renderer produces the Markdown compliance report. It never fails; a
// report built from nothing is still a report.
type Renderer struct {
	lister ResourceLister
}

// NewRenderer creates a renderer
func NewRenderer(lister ResourceLister) *Renderer {
	return &Renderer{lister: lister}
}

// Render builds the full report text. Empty assignments collapse to a
// single informational line and nothing else.
func (r *Renderer) Render(ctx context.Context, assignments []types.PolicyAssignment, exemptions []types.PolicyExemption, resourceGroup string) string {
	if len(assignments) == 0 {
		return fmt.Sprintf("No policy assignments found in %s\n", resourceGroup)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d policy assignments in %s\n", len(assignments), resourceGroup)

	// Worst first, stable on ties
	sorted := make([]types.PolicyAssignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return stateRank(sorted[i].Compliance) < stateRank(sorted[j].Compliance)
	})

	for _, a := range sorted {
		b.WriteString("\n")
		r.writeAssignment(ctx, &b, a, resourceGroup)
	}

	r.writeExemptions(&b, exemptions, resourceGroup)

	return b.String()
}

func (r *Renderer) writeAssignment(ctx context.Context, b *strings.Builder, a types.PolicyAssignment, resourceGroup string) {
	b.WriteString(assignmentLine(a) + "\n")

	if a.Description != "" {
		b.WriteString("<details>\n<summary>Policy description</summary>\n\n")
		b.WriteString(a.Description)
		b.WriteString("\n</details>\n")
	}

	if a.Compliance != types.StateNonCompliant {
		return
	}

	resources := r.lister.NonCompliantResources(ctx, resourceGroup, a.Name)
	if len(resources) == 0 {
		return
	}

	b.WriteString("\n**Non-compliant resources:**\n")
	for _, res := range resources {
		b.WriteString("- " + nonCompliantLine(res) + "\n")
	}
}

func (r *Renderer) writeExemptions(b *strings.Builder, exemptions []types.PolicyExemption, resourceGroup string) {
	b.WriteString("\n")
	if len(exemptions) == 0 {
		fmt.Fprintf(b, "No policy exemptions found in %s\n", resourceGroup)
		return
	}

	fmt.Fprintf(b, "Found %d policy exemptions in %s\n", len(exemptions), resourceGroup)
	for _, e := range exemptions {
		b.WriteString("\n")
		writeExemption(b, e)
	}
}

func writeExemption(b *strings.Builder, e types.PolicyExemption) {
	line := fmt.Sprintf("- **%s**", e.DisplayName)
	if e.Category != "" {
		line += fmt.Sprintf(" [%s]", e.Category)
	}
	b.WriteString(line + "\n")

	// Absent optional fields omit their line entirely
	if e.ExpiresOn != "" {
		fmt.Fprintf(b, "  - Expires: %s\n", e.ExpiresOn)
	}
	if e.Description != "" {
		fmt.Fprintf(b, "  - Reason: %s\n", e.Description)
	}
	if e.PolicyAssignmentID != "" {
		fmt.Fprintf(b, "  - Policy: %s\n", types.LastSegment(e.PolicyAssignmentID))
	}
}

func assignmentLine(a types.PolicyAssignment) string {
	line := fmt.Sprintf("%s **%s**", stateGlyph(a.Compliance), a.DisplayName)
	if a.EnforcementMode != "" && a.EnforcementMode != types.EnforcementDefault {
		line += fmt.Sprintf(" (%s)", a.EnforcementMode)
	}
	if a.Compliance != types.StateUnknown {
		line += fmt.Sprintf(" *(%s)*", a.Compliance)
	}
	return line
}

func nonCompliantLine(res types.NonCompliantResource) string {
	line := fmt.Sprintf("%s (%s)", res.Name, res.Type)
	if res.Location != "" {
		line += fmt.Sprintf(" — Location: %s", res.Location)
	}
	return line
}

func stateGlyph(s types.ComplianceState) string {
	switch s {
	case types.StateCompliant:
		return "✅"
	case types.StateNonCompliant:
		return "❌"
	default:
		return "⚪"
	}
}

func stateRank(s types.ComplianceState) int {
	switch s {
	case types.StateNonCompliant:
		return 0
	case types.StateCompliant:
		return 1
	default:
		return 2
	}
}
