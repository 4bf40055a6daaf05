// Package policy assembles the compliance picture of a resource group
// from Azure Policy assignments, evaluation states and exemptions.
package policy

import (
	"context"

	"github.com/yairfalse/valvo/telemetry"
	"github.com/yairfalse/valvo/types"
)

// ComplianceAPI is the slice of the Azure surface the aggregator reads
type ComplianceAPI interface {
	ListPolicyAssignments(ctx context.Context, resourceGroup string) ([]types.PolicyAssignment, error)
	ListPolicyStates(ctx context.Context, resourceGroup string) ([]types.ComplianceRecord, error)
	ListPolicyExemptions(ctx context.Context, resourceGroup string) ([]types.PolicyExemption, error)
	DescribeDefinition(ctx context.Context, definitionID string) (string, error)
}

// Aggregator reads the compliance state of a resource group. Every fetch
// degrades to an empty result on error, so a report always renders even
// when half the API surface is down.
type Aggregator struct {
	api    ComplianceAPI
	logger *telemetry.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(api ComplianceAPI, logger *telemetry.Logger) *Aggregator {
	return &Aggregator{
		api:    api,
		logger: logger,
	}
}

// AssignmentsWithCompliance returns every assignment scoped to the group
// with its reduced overall compliance state attached
func (a *Aggregator) AssignmentsWithCompliance(ctx context.Context, resourceGroup string) []types.PolicyAssignment {
	assignments, err := a.api.ListPolicyAssignments(ctx, resourceGroup)
	if err != nil {
		a.logger.LogFetchDegraded(ctx, resourceGroup, "list policy assignments", err)
		return nil
	}

	records, err := a.api.ListPolicyStates(ctx, resourceGroup)
	if err != nil {
		a.logger.LogFetchDegraded(ctx, resourceGroup, "query policy states", err)
		records = nil
	}

	statesByAssignment := make(map[string][]types.ComplianceState)
	for _, rec := range records {
		statesByAssignment[rec.AssignmentName] = append(statesByAssignment[rec.AssignmentName], rec.State)
	}

	for i := range assignments {
		assignments[i].Compliance = ReduceCompliance(statesByAssignment[assignments[i].Name])
		a.fillDescription(ctx, &assignments[i])
	}

	telemetry.AssignmentsReported.Add(ctx, int64(len(assignments)))
	return assignments
}

// fillDescription backfills a missing description from the policy
// definition, best effort
func (a *Aggregator) fillDescription(ctx context.Context, assignment *types.PolicyAssignment) {
	if assignment.Description != "" || assignment.PolicyDefinitionID == "" {
		return
	}

	desc, err := a.api.DescribeDefinition(ctx, assignment.PolicyDefinitionID)
	if err != nil {
		a.logger.WithContext(ctx).Debug().
			Err(err).
			Str("definition_id", assignment.PolicyDefinitionID).
			Msg("definition description unavailable")
		return
	}
	assignment.Description = desc
}

// Exemptions returns the exemptions scoped to the group
func (a *Aggregator) Exemptions(ctx context.Context, resourceGroup string) []types.PolicyExemption {
	exemptions, err := a.api.ListPolicyExemptions(ctx, resourceGroup)
	if err != nil {
		a.logger.LogFetchDegraded(ctx, resourceGroup, "list policy exemptions", err)
		return nil
	}
	return exemptions
}

// NonCompliantResources returns the failing resources for one assignment,
// projected down to what the report shows
func (a *Aggregator) NonCompliantResources(ctx context.Context, resourceGroup, assignmentName string) []types.NonCompliantResource {
	records, err := a.api.ListPolicyStates(ctx, resourceGroup)
	if err != nil {
		a.logger.LogFetchDegraded(ctx, resourceGroup, "query policy states", err)
		return nil
	}

	var out []types.NonCompliantResource
	for _, rec := range records {
		if rec.AssignmentName != assignmentName || rec.State != types.StateNonCompliant {
			continue
		}
		out = append(out, types.NonCompliantResource{
			Name:     types.LastSegment(rec.ResourceID),
			Type:     rec.ResourceType,
			Location: rec.Location,
		})
	}
	return out
}
