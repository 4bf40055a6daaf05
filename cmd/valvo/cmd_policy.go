package main

import (
	"github.com/spf13/cobra"
)

var (
	policyResourceGroup string
	policySubscription  string
	policySummaryFile   string
)

// policyCmd groups the Azure Policy operations
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Azure Policy compliance operations",
}

// policyReportCmd represents the policy report command
var policyReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a Markdown compliance report for a resource group",
	Long: `Fetch policy assignments, their compliance states and exemptions for
one resource group and render a Markdown report, worst state first.

Fetch failures degrade to empty report sections instead of failing
the run. A pipeline never goes red because a compliance read was
refused.`,
	Example: `  valvo policy report --resource-group rg-ci
  valvo policy report -g rg-ci --summary-file "$GITHUB_STEP_SUMMARY"`,
	RunE: runPolicyReport,
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyReportCmd)

	policyReportCmd.Flags().StringVarP(&policyResourceGroup, "resource-group", "g", "", "Resource group to report on")
	policyReportCmd.Flags().StringVarP(&policySubscription, "subscription", "s", "", "Subscription ID (default: resolved from the identity)")
	policyReportCmd.Flags().StringVar(&policySummaryFile, "summary-file", "", "Also append the report to this file (default: $GITHUB_STEP_SUMMARY)")
}

func runPolicyReport(cmd *cobra.Command, _ []string) error {
	command := &PolicyReportCommand{
		ResourceGroup: policyResourceGroup,
		Subscription:  policySubscription,
		SummaryFile:   policySummaryFile,
	}
	return command.Run(cmd.Context())
}
