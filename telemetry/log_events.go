package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecordOperationRetriedEvent emits a structured event when an operation
// hits a transient failure and backs off
func RecordOperationRetriedEvent(
	span trace.Span,
	operation string,
	errorType string,
	attempt int,
	delaySeconds float64,
) {
	if span == nil {
		return
	}

	span.AddEvent("azure.operation.retried", trace.WithAttributes(
		attribute.String("event.type", "azure.operation.retried"),
		attribute.String("operation", operation),
		attribute.String("error.type", errorType),
		attribute.Int("attempt", attempt),
		attribute.Float64("backoff.seconds", delaySeconds),
	))
}

// RecordOperationFailedEvent emits a structured event when an operation
// gives up, either on a terminal failure class or an exhausted budget
func RecordOperationFailedEvent(
	span trace.Span,
	operation string,
	errorType string,
	attempts int,
	exitCode int,
) {
	if span == nil {
		return
	}

	span.AddEvent("azure.operation.failed", trace.WithAttributes(
		attribute.String("event.type", "azure.operation.failed"),
		attribute.String("operation", operation),
		attribute.String("error.type", errorType),
		attribute.Int("attempts", attempts),
		attribute.Int("exit.code", exitCode),
	))
}

// RecordComplianceReportedEvent emits a structured event when a compliance
// report has been assembled for a resource group
func RecordComplianceReportedEvent(
	span trace.Span,
	resourceGroup string,
	assignments int,
	nonCompliant int,
	exemptions int,
) {
	if span == nil {
		return
	}

	span.AddEvent("policy.compliance.reported", trace.WithAttributes(
		attribute.String("event.type", "policy.compliance.reported"),
		attribute.String("resource.group", resourceGroup),
		attribute.Int("assignments.total", assignments),
		attribute.Int("assignments.noncompliant", nonCompliant),
		attribute.Int("exemptions.total", exemptions),
	))
}

// RecordResourceDestroyedEvent emits a structured event for each destroy
// outcome, including skips and failures
func RecordResourceDestroyedEvent(
	span trace.Span,
	resourceID string,
	resourceType string,
	status string,
	errorMsg string,
) {
	if span == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("event.type", "infrastructure.resource.destroyed"),
		attribute.String("resource.id", resourceID),
		attribute.String("resource.type", resourceType),
		attribute.String("status", status),
	}

	if errorMsg != "" {
		attrs = append(attrs, attribute.String("error", errorMsg))
	}

	span.AddEvent("infrastructure.resource.destroyed", trace.WithAttributes(attrs...))
}

// RecordProbeCompletedEvent emits a structured event for an endpoint
// reachability probe
func RecordProbeCompletedEvent(
	span trace.Span,
	url string,
	statusCode int,
	healthy bool,
) {
	if span == nil {
		return
	}

	span.AddEvent("deployment.probe.completed", trace.WithAttributes(
		attribute.String("event.type", "deployment.probe.completed"),
		attribute.String("probe.url", url),
		attribute.Int("http.status_code", statusCode),
		attribute.Bool("healthy", healthy),
	))
}
