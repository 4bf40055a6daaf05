package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// NewClientSetResolved builds management clients after resolving which
// subscription to use. With no explicit ID the identity must see exactly
// one enabled subscription.
func NewClientSetResolved(ctx context.Context, explicitSubscription string) (*ClientSet, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	subscriptions, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	subscriptionID, err := ResolveSubscription(ctx, subscriptions, explicitSubscription)
	if err != nil {
		return nil, err
	}

	return NewClientSetWithCredential(subscriptionID, cred)
}

// ResolveSubscription returns the subscription to operate on. An explicit
// ID wins without any API call; otherwise the identity must see exactly
// one enabled subscription.
func ResolveSubscription(ctx context.Context, client *armsubscriptions.Client, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	var enabled []string
	pager := client.NewListPager(nil)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, sub := range next.Value {
			if sub == nil || sub.SubscriptionID == nil {
				continue
			}
			if sub.State != nil && *sub.State != armsubscriptions.SubscriptionStateEnabled {
				continue
			}
			enabled = append(enabled, *sub.SubscriptionID)
		}
	}

	switch len(enabled) {
	case 0:
		return "", fmt.Errorf("no enabled subscription visible to this identity")
	case 1:
		return enabled[0], nil
	default:
		return "", fmt.Errorf("%d enabled subscriptions visible, pass --subscription", len(enabled))
	}
}
