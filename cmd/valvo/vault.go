package main

import (
	"context"
	"fmt"

	"github.com/yairfalse/valvo/azure"
	"github.com/yairfalse/valvo/telemetry"
	"github.com/yairfalse/valvo/vault"
)

// VaultGetCommand implements the 'valvo vault get' command
type VaultGetCommand struct {
	Vault string
	Name  string
}

// VaultSetCommand implements the 'valvo vault set' command
type VaultSetCommand struct {
	Vault string
	Name  string
	Value string
}

// VaultVerifyCommand implements the 'valvo vault verify' command
type VaultVerifyCommand struct {
	Vault         string
	ResourceGroup string
	Secrets       []string
}

// newVaultStore wires both Key Vault planes for the named vault
func newVaultStore(ctx context.Context, name string, logger *telemetry.Logger) (*vault.Store, error) {
	resolved := firstNonEmpty(name, appConfig.Vault.Name)
	if resolved == "" {
		return nil, fmt.Errorf("vault name required: pass --vault or set vault.name in config")
	}

	clients, err := azure.NewClientSetResolved(ctx, appConfig.Subscription)
	if err != nil {
		return nil, err
	}

	secrets, err := clients.SecretsClient(vault.VaultURL(resolved))
	if err != nil {
		return nil, err
	}

	return vault.NewStore(resolved, secrets, clients.Vaults, logger), nil
}

// Run executes the vault get command
func (cmd *VaultGetCommand) Run(ctx context.Context) error {
	store, err := newVaultStore(ctx, cmd.Vault, telemetry.NewLogger("valvo"))
	if err != nil {
		return err
	}

	value, err := store.GetSecret(ctx, cmd.Name)
	if err != nil {
		return err
	}

	// The value is the payload; nothing else may share stdout
	fmt.Println(value)
	return nil
}

// Run executes the vault set command
func (cmd *VaultSetCommand) Run(ctx context.Context) error {
	store, err := newVaultStore(ctx, cmd.Vault, telemetry.NewLogger("valvo"))
	if err != nil {
		return err
	}
	return store.SetSecret(ctx, cmd.Name, cmd.Value)
}

// Run executes the vault verify command
func (cmd *VaultVerifyCommand) Run(ctx context.Context) error {
	resourceGroup := firstNonEmpty(cmd.ResourceGroup, appConfig.ResourceGroup)
	if resourceGroup == "" {
		return fmt.Errorf("resource group required: pass --resource-group or set resource_group in config")
	}

	store, err := newVaultStore(ctx, cmd.Vault, telemetry.NewLogger("valvo"))
	if err != nil {
		return err
	}

	result := store.VerifyAccess(ctx, resourceGroup, cmd.Secrets)

	sink := summarySink("")
	defer func() { _ = sink.Close() }()

	// Missing secrets are findings, not failures
	return sink.Write(ctx, result.Render())
}
