package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/policyinsights/armpolicyinsights"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armpolicy"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// ClientSet bundles the management plane clients for one subscription
type ClientSet struct {
	SubscriptionID string

	Assignments   *armpolicy.AssignmentsClient
	Definitions   *armpolicy.DefinitionsClient
	Exemptions    *armpolicy.ExemptionsClient
	PolicyStates  *armpolicyinsights.PolicyStatesClient
	Resources     *armresources.Client
	Vaults        *armkeyvault.VaultsClient
	Subscriptions *armsubscriptions.Client

	credential azcore.TokenCredential
}

// NewClientSet builds management clients using the default credential
// chain: environment, workload identity, managed identity, then the
// az CLI cache. That chain covers both CI runners and laptops.
func NewClientSet(subscriptionID string) (*ClientSet, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	return NewClientSetWithCredential(subscriptionID, cred)
}

// NewClientSetWithCredential builds management clients with an explicit
// credential
func NewClientSetWithCredential(subscriptionID string, cred azcore.TokenCredential) (*ClientSet, error) {
	assignments, err := armpolicy.NewAssignmentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create policy assignments client: %w", err)
	}

	definitions, err := armpolicy.NewDefinitionsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create policy definitions client: %w", err)
	}

	exemptions, err := armpolicy.NewExemptionsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create policy exemptions client: %w", err)
	}

	policyStates, err := armpolicyinsights.NewPolicyStatesClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create policy states client: %w", err)
	}

	resources, err := armresources.NewClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}

	vaults, err := armkeyvault.NewVaultsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create vaults client: %w", err)
	}

	subscriptions, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	return &ClientSet{
		SubscriptionID: subscriptionID,
		Assignments:    assignments,
		Definitions:    definitions,
		Exemptions:     exemptions,
		PolicyStates:   policyStates,
		Resources:      resources,
		Vaults:         vaults,
		Subscriptions:  subscriptions,
		credential:     cred,
	}, nil
}

// SecretsClient returns a data plane client scoped to one vault URL
func (c *ClientSet) SecretsClient(vaultURL string) (*azsecrets.Client, error) {
	client, err := azsecrets.NewClient(vaultURL, c.credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets client for %s: %w", vaultURL, err)
	}
	return client, nil
}

// Credential exposes the token credential for clients built elsewhere
func (c *ClientSet) Credential() azcore.TokenCredential {
	return c.credential
}

// toValue dereferences a pointer, returning the zero value for nil
func toValue[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// stringTags flattens the SDK's pointer-valued tag map
func stringTags(tags map[string]*string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		if v == nil {
			continue
		}
		out[k] = *v
	}
	return out
}
