package azure

import (
	"context"
	"fmt"

	"github.com/yairfalse/valvo/types"
)

// ListResourceGroupResources returns every resource in a resource group
// flattened to the valvo resource model
func (c *ClientSet) ListResourceGroupResources(ctx context.Context, resourceGroup string) ([]types.Resource, error) {
	var out []types.Resource

	pager := c.Resources.NewListByResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources in %s: %w", resourceGroup, err)
		}
		for _, res := range next.Value {
			if res == nil || res.ID == nil {
				continue
			}
			out = append(out, types.Resource{
				ID:            toValue(res.ID),
				Name:          toValue(res.Name),
				Type:          toValue(res.Type),
				Location:      toValue(res.Location),
				ResourceGroup: resourceGroup,
				Status:        toValue(res.ProvisioningState),
				Tags:          stringTags(res.Tags),
			})
		}
	}

	return out, nil
}
