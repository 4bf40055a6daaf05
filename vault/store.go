// Package vault reads and writes Key Vault secrets. Secret values stay
// out of logs; only names appear.
package vault

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/yairfalse/valvo/telemetry"
)

// SecretsAPI is the data-plane surface the store needs
type SecretsAPI interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
	SetSecret(ctx context.Context, name string, parameters azsecrets.SetSecretParameters, options *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error)
	NewListSecretPropertiesPager(options *azsecrets.ListSecretPropertiesOptions) *runtime.Pager[azsecrets.ListSecretPropertiesResponse]
}

// VaultsAPI is the management-plane surface the store needs
type VaultsAPI interface {
	Get(ctx context.Context, resourceGroupName string, vaultName string, options *armkeyvault.VaultsClientGetOptions) (armkeyvault.VaultsClientGetResponse, error)
}

// Store accesses one Key Vault through both planes
type Store struct {
	vaultName string
	secrets   SecretsAPI
	vaults    VaultsAPI
	logger    *telemetry.Logger
}

// NewStore creates a store for the named vault
func NewStore(vaultName string, secrets SecretsAPI, vaults VaultsAPI, logger *telemetry.Logger) *Store {
	return &Store{
		vaultName: vaultName,
		secrets:   secrets,
		vaults:    vaults,
		logger:    logger,
	}
}

// VaultURL builds the data-plane endpoint for a vault name
func VaultURL(name string) string {
	return fmt.Sprintf("https://%s.vault.azure.net", name)
}

// GetSecret fetches the latest version of a secret. A missing secret is
// a hard error; the caller asked for it by name.
func (s *Store) GetSecret(ctx context.Context, name string) (string, error) {
	resp, err := s.secrets.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s from vault %s: %w", name, s.vaultName, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %s in vault %s has no value", name, s.vaultName)
	}
	return *resp.Value, nil
}

// SetSecret writes a new version of a secret
func (s *Store) SetSecret(ctx context.Context, name, value string) error {
	_, err := s.secrets.SetSecret(ctx, name, azsecrets.SetSecretParameters{
		Value: to.Ptr(value),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to set secret %s in vault %s: %w", name, s.vaultName, err)
	}

	s.logger.WithContext(ctx).Info().
		Str("secret", name).
		Str("vault", s.vaultName).
		Msg("secret written")
	return nil
}
