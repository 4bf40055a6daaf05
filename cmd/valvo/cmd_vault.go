package main

import (
	"github.com/spf13/cobra"
)

var (
	vaultName          string
	vaultResourceGroup string
	vaultSecretNames   []string
)

// vaultCmd groups the Key Vault secret operations
var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Key Vault secret operations",
}

// vaultGetCmd represents the vault get command
var vaultGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a secret value to stdout",
	Long: `Read one secret and print its value to stdout, nothing else. The
value is never logged, so the output is safe to capture:

  API_KEY=$(valvo vault get api-key --vault kv-ci)`,
	Args: cobra.ExactArgs(1),
	RunE: runVaultGet,
}

// vaultSetCmd represents the vault set command
var vaultSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Write a secret",
	Args:  cobra.ExactArgs(2),
	RunE:  runVaultSet,
}

// vaultVerifyCmd represents the vault verify command
var vaultVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check vault reachability and secret presence",
	Long: `Confirm the vault resolves through the management plane and that the
named secrets are readable through the data plane. Without --secret
the check lists secret properties to prove the identity can read.`,
	Example: `  valvo vault verify --vault kv-ci -g rg-ci --secret api-key --secret db-password`,
	RunE:    runVaultVerify,
}

func init() {
	rootCmd.AddCommand(vaultCmd)
	vaultCmd.AddCommand(vaultGetCmd)
	vaultCmd.AddCommand(vaultSetCmd)
	vaultCmd.AddCommand(vaultVerifyCmd)

	vaultCmd.PersistentFlags().StringVar(&vaultName, "vault", "", "Key Vault name (default from config)")
	vaultVerifyCmd.Flags().StringVarP(&vaultResourceGroup, "resource-group", "g", "", "Resource group holding the vault")
	vaultVerifyCmd.Flags().StringSliceVar(&vaultSecretNames, "secret", nil, "Secret that must be present (repeatable)")
}

func runVaultGet(cmd *cobra.Command, args []string) error {
	command := &VaultGetCommand{Vault: vaultName, Name: args[0]}
	return command.Run(cmd.Context())
}

func runVaultSet(cmd *cobra.Command, args []string) error {
	command := &VaultSetCommand{Vault: vaultName, Name: args[0], Value: args[1]}
	return command.Run(cmd.Context())
}

func runVaultVerify(cmd *cobra.Command, _ []string) error {
	command := &VaultVerifyCommand{
		Vault:         vaultName,
		ResourceGroup: vaultResourceGroup,
		Secrets:       vaultSecretNames,
	}
	return command.Run(cmd.Context())
}
