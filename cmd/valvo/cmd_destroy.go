package main

import (
	"github.com/spf13/cobra"
)

var (
	destroyResourceGroup   string
	destroySubscription    string
	destroyYes             bool
	destroyForce           bool
	destroyAllowProduction bool
	destroyRequireTags     []string
	destroyExcludeTypes    []string
	destroyIncludeTags     []string
	destroyExcludeTags     []string
)

// destroyCmd represents the destroy command
var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Destroy resources in a resource group, behind safety checks",
	Long: `Delete the resources of an ephemeral environment. Every target passes
safety checks first: protected tags always block, required tags must
be present, production-tagged resources need an explicit override.

Without --yes this is a dry run that only prints the plan. Deletes
run under the same retry engine as 'valvo retry'; a locked scope is
recorded as skipped, not failed.`,
	Example: `  valvo destroy -g rg-ephemeral-pr42
  valvo destroy -g rg-ephemeral-pr42 --include-tag env=ci --yes
  valvo destroy -g rg-ephemeral-pr42 --require-tag owner --require-tag env --yes`,
	RunE: runDestroy,
}

func init() {
	rootCmd.AddCommand(destroyCmd)

	destroyCmd.Flags().StringVarP(&destroyResourceGroup, "resource-group", "g", "", "Resource group to destroy resources in")
	destroyCmd.Flags().StringVarP(&destroySubscription, "subscription", "s", "", "Subscription ID (default: resolved from the identity)")
	destroyCmd.Flags().BoolVar(&destroyYes, "yes", false, "Actually delete (default is a dry run)")
	destroyCmd.Flags().BoolVar(&destroyForce, "force", false, "Skip the required-tags check")
	destroyCmd.Flags().BoolVar(&destroyAllowProduction, "allow-production", false, "Allow production-tagged resources to be destroyed")
	destroyCmd.Flags().StringSliceVar(&destroyRequireTags, "require-tag", nil, "Tag key a target must carry (repeatable)")
	destroyCmd.Flags().StringSliceVar(&destroyExcludeTypes, "exclude-type", nil, "Resource type to leave alone (repeatable)")
	destroyCmd.Flags().StringSliceVar(&destroyIncludeTags, "include-tag", nil, "key=value a target must carry (repeatable)")
	destroyCmd.Flags().StringSliceVar(&destroyExcludeTags, "exclude-tag", nil, "key=value that excludes a target (repeatable)")
}

func runDestroy(cmd *cobra.Command, _ []string) error {
	includeTags, err := parseTagPairs(destroyIncludeTags)
	if err != nil {
		return err
	}
	excludeTags, err := parseTagPairs(destroyExcludeTags)
	if err != nil {
		return err
	}

	command := &DestroyCommand{
		ResourceGroup:   destroyResourceGroup,
		Subscription:    destroySubscription,
		Yes:             destroyYes,
		Force:           destroyForce,
		AllowProduction: destroyAllowProduction,
		RequireTags:     destroyRequireTags,
		ExcludeTypes:    destroyExcludeTypes,
		IncludeTags:     includeTags,
		ExcludeTags:     excludeTags,
	}
	return command.Run(cmd.Context())
}
