package report

import (
	"context"
	"fmt"
	"time"

	"github.com/yairfalse/valvo/telemetry"
	"github.com/yairfalse/valvo/types"
)

// ComplianceSource provides the data a report renders
type ComplianceSource interface {
	AssignmentsWithCompliance(ctx context.Context, resourceGroup string) []types.PolicyAssignment
	Exemptions(ctx context.Context, resourceGroup string) []types.PolicyExemption
	NonCompliantResources(ctx context.Context, resourceGroup, assignmentName string) []types.NonCompliantResource
}

// Reporter ties aggregation, rendering and summary sinks together
type Reporter struct {
	source   ComplianceSource
	renderer *Renderer
	writer   SummaryWriter
	logger   *telemetry.Logger
}

// NewReporter creates a reporter writing to the given sink
func NewReporter(source ComplianceSource, writer SummaryWriter, logger *telemetry.Logger) *Reporter {
	return &Reporter{
		source:   source,
		renderer: NewRenderer(source),
		writer:   writer,
		logger:   logger,
	}
}

// Run builds the compliance report for one resource group and delivers
// it to the sink. Degraded fetches still produce a report; only a sink
// failure is an error.
func (r *Reporter) Run(ctx context.Context, resourceGroup string) error {
	start := time.Now()
	ctx, span := telemetry.Tracer.Start(ctx, "policy.report")
	defer span.End()

	assignments := r.source.AssignmentsWithCompliance(ctx, resourceGroup)
	exemptions := r.source.Exemptions(ctx, resourceGroup)

	markdown := r.renderer.Render(ctx, assignments, exemptions, resourceGroup)

	nonCompliant := 0
	for _, a := range assignments {
		if a.Compliance == types.StateNonCompliant {
			nonCompliant++
		}
	}

	telemetry.ReportDuration.Record(ctx, time.Since(start).Seconds())
	telemetry.RecordComplianceReportedEvent(span, resourceGroup, len(assignments), nonCompliant, len(exemptions))
	r.logger.LogReportRendered(ctx, resourceGroup, len(assignments), len(exemptions))

	if err := r.writer.Write(ctx, markdown); err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}
	return nil
}
