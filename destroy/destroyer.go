package destroy

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/valvo/azure"
	"github.com/yairfalse/valvo/internal/filter"
	"github.com/yairfalse/valvo/retry"
	"github.com/yairfalse/valvo/telemetry"
	"github.com/yairfalse/valvo/types"
)

// ResourceLister fetches the destroy candidates of a resource group
type ResourceLister interface {
	ListResourceGroupResources(ctx context.Context, resourceGroup string) ([]types.Resource, error)
}

// Destroyer deletes resources through the retry engine after every
// target clears the safety checks.
type Destroyer struct {
	lister ResourceLister
	engine *retry.Engine
	policy retry.Policy
	safety *SafetyChecker
	logger *telemetry.Logger
}

// NewDestroyer creates a destroyer with the standard safety checks
func NewDestroyer(lister ResourceLister, engine *retry.Engine, policy retry.Policy, logger *telemetry.Logger) *Destroyer {
	return &Destroyer{
		lister: lister,
		engine: engine,
		policy: policy,
		safety: NewSafetyChecker(),
		logger: logger,
	}
}

// ListTargets fetches the group's resources and applies the tag filter
func (d *Destroyer) ListTargets(ctx context.Context, resourceGroup string, f *filter.Filter) ([]types.Resource, error) {
	resources, err := d.lister.ListResourceGroupResources(ctx, resourceGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to list destroy targets in %s: %w", resourceGroup, err)
	}
	return f.FilterResources(resources), nil
}

// Destroy runs the plan over the targets. Dry runs never delete.
func (d *Destroyer) Destroy(ctx context.Context, targets []types.Resource, opts Options) Result {
	ctx, span := telemetry.Tracer.Start(ctx, "destroy.run")
	defer span.End()

	result := Result{Total: len(targets)}
	for _, target := range targets {
		result.add(d.destroyOne(ctx, target, opts))
	}

	d.logger.WithContext(ctx).Info().
		Int("total", result.Total).
		Int("destroyed", result.Destroyed).
		Int("blocked", result.Blocked).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Bool("dry_run", opts.DryRun).
		Msg("destruction run finished")

	return result
}

func (d *Destroyer) destroyOne(ctx context.Context, target types.Resource, opts Options) Outcome {
	span := trace.SpanFromContext(ctx)

	if check, blocked := d.safety.Check(target, opts); blocked {
		d.logger.LogDestroyBlocked(ctx, target.ID, check.Reason)
		telemetry.RecordResourceDestroyedEvent(span, target.ID, target.Type, string(StatusBlocked), check.Reason)
		return Outcome{Resource: target, Status: StatusBlocked, Reason: check.Reason}
	}

	if opts.DryRun {
		telemetry.RecordResourceDestroyedEvent(span, target.ID, target.Type, string(StatusPlanned), "")
		return Outcome{Resource: target, Status: StatusPlanned, Reason: "dry run"}
	}

	res := d.engine.Do(ctx, d.policy, "delete resource "+target.Name, azure.Command(
		"resource", "delete",
		"--ids", target.ID,
	))

	switch {
	case res.Succeeded:
		telemetry.ResourcesDestroyed.Add(ctx, 1)
		d.logger.LogDestroyResult(ctx, target.ID, nil)
		telemetry.RecordResourceDestroyedEvent(span, target.ID, target.Type, string(StatusDestroyed), "")
		return Outcome{Resource: target, Status: StatusDestroyed, Attempts: res.Attempts}

	case res.Class == types.FailureScopeLocked:
		// A lock is an answer, not an outage
		reason := "scope is locked"
		telemetry.RecordResourceDestroyedEvent(span, target.ID, target.Type, string(StatusSkipped), reason)
		return Outcome{Resource: target, Status: StatusSkipped, Reason: reason, Attempts: res.Attempts}

	default:
		err := fmt.Errorf("delete failed after %d attempts (%s)", res.Attempts, res.Class)
		d.logger.LogDestroyResult(ctx, target.ID, err)
		telemetry.RecordResourceDestroyedEvent(span, target.ID, target.Type, string(StatusFailed), err.Error())
		return Outcome{Resource: target, Status: StatusFailed, Reason: err.Error(), Attempts: res.Attempts}
	}
}
