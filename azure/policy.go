package azure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/policyinsights/armpolicyinsights"

	"github.com/yairfalse/valvo/types"
)

// ListPolicyAssignments returns the policy assignments scoped to a
// resource group. Compliance arrives separately from policy insights;
// here every assignment starts unknown.
func (c *ClientSet) ListPolicyAssignments(ctx context.Context, resourceGroup string) ([]types.PolicyAssignment, error) {
	var out []types.PolicyAssignment

	pager := c.Assignments.NewListForResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list policy assignments in %s: %w", resourceGroup, err)
		}
		for _, a := range next.Value {
			if a == nil || a.Name == nil {
				continue
			}

			assignment := types.PolicyAssignment{
				Name:            toValue(a.Name),
				EnforcementMode: types.EnforcementDefault,
				Compliance:      types.StateUnknown,
			}
			if a.Properties != nil {
				assignment.DisplayName = toValue(a.Properties.DisplayName)
				assignment.Description = toValue(a.Properties.Description)
				assignment.PolicyDefinitionID = toValue(a.Properties.PolicyDefinitionID)
				if a.Properties.EnforcementMode != nil {
					assignment.EnforcementMode = string(*a.Properties.EnforcementMode)
				}
			}
			if assignment.DisplayName == "" {
				assignment.DisplayName = assignment.Name
			}

			out = append(out, assignment)
		}
	}

	return out, nil
}

// ListPolicyStates returns the latest per-resource evaluation rows for a
// resource group
func (c *ClientSet) ListPolicyStates(ctx context.Context, resourceGroup string) ([]types.ComplianceRecord, error) {
	var out []types.ComplianceRecord

	pager := c.PolicyStates.NewListQueryResultsForResourceGroupPager(
		armpolicyinsights.PolicyStatesResourceLatest,
		c.SubscriptionID,
		resourceGroup,
		nil,
		nil,
	)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query policy states for %s: %w", resourceGroup, err)
		}
		for _, state := range next.Value {
			if state == nil {
				continue
			}
			out = append(out, types.ComplianceRecord{
				AssignmentName: toValue(state.PolicyAssignmentName),
				ResourceID:     toValue(state.ResourceID),
				ResourceType:   toValue(state.ResourceType),
				Location:       toValue(state.ResourceLocation),
				State:          types.ComplianceState(toValue(state.ComplianceState)),
			})
		}
	}

	return out, nil
}

// ListPolicyExemptions returns the exemptions scoped to a resource group
func (c *ClientSet) ListPolicyExemptions(ctx context.Context, resourceGroup string) ([]types.PolicyExemption, error) {
	var out []types.PolicyExemption

	pager := c.Exemptions.NewListForResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list policy exemptions in %s: %w", resourceGroup, err)
		}
		for _, e := range next.Value {
			if e == nil || e.Name == nil {
				continue
			}

			exemption := types.PolicyExemption{
				Name: toValue(e.Name),
			}
			if e.Properties != nil {
				exemption.DisplayName = toValue(e.Properties.DisplayName)
				exemption.Description = toValue(e.Properties.Description)
				exemption.PolicyAssignmentID = toValue(e.Properties.PolicyAssignmentID)
				if e.Properties.ExemptionCategory != nil {
					exemption.Category = string(*e.Properties.ExemptionCategory)
				}
				if e.Properties.ExpiresOn != nil {
					exemption.ExpiresOn = e.Properties.ExpiresOn.UTC().Format(time.RFC3339)
				}
			}
			if exemption.DisplayName == "" {
				exemption.DisplayName = exemption.Name
			}

			out = append(out, exemption)
		}
	}

	return out, nil
}

// DescribeDefinition fetches the description of a policy definition by
// its full resource ID. Built-in definitions live at the tenant root,
// custom ones under a subscription. Initiatives carry no single
// definition description.
func (c *ClientSet) DescribeDefinition(ctx context.Context, definitionID string) (string, error) {
	name := types.LastSegment(definitionID)
	if name == "" {
		return "", fmt.Errorf("empty policy definition id")
	}
	if strings.Contains(definitionID, "policySetDefinitions") {
		return "", fmt.Errorf("%s is an initiative, not a definition", name)
	}

	if strings.HasPrefix(definitionID, "/subscriptions/") {
		resp, err := c.Definitions.Get(ctx, name, nil)
		if err != nil {
			return "", fmt.Errorf("failed to get policy definition %s: %w", name, err)
		}
		if resp.Properties == nil {
			return "", nil
		}
		return toValue(resp.Properties.Description), nil
	}

	resp, err := c.Definitions.GetBuiltIn(ctx, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get built-in policy definition %s: %w", name, err)
	}
	if resp.Properties == nil {
		return "", nil
	}
	return toValue(resp.Properties.Description), nil
}
