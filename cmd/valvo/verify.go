package main

import (
	"context"
	"fmt"

	"github.com/yairfalse/valvo/azure"
	"github.com/yairfalse/valvo/retry"
	"github.com/yairfalse/valvo/telemetry"
	"github.com/yairfalse/valvo/verify"
)

// VerifyCommand implements the 'valvo verify' command
type VerifyCommand struct {
	ResourceGroup  string
	FunctionApp    string
	StorageAccount string
	AppInsights    string
	URL            string
	SummaryFile    string
}

// Run executes the verify command
func (cmd *VerifyCommand) Run(ctx context.Context) error {
	resourceGroup := firstNonEmpty(cmd.ResourceGroup, appConfig.ResourceGroup)
	if resourceGroup == "" {
		return fmt.Errorf("resource group required: pass --resource-group or set resource_group in config")
	}

	targets := verify.Targets{
		ResourceGroup:  resourceGroup,
		FunctionApp:    firstNonEmpty(cmd.FunctionApp, appConfig.Verify.FunctionApp),
		StorageAccount: firstNonEmpty(cmd.StorageAccount, appConfig.Verify.StorageAccount),
		AppInsights:    firstNonEmpty(cmd.AppInsights, appConfig.Verify.AppInsights),
		URL:            cmd.URL,
	}
	if targets.FunctionApp == "" && targets.StorageAccount == "" && targets.AppInsights == "" && targets.URL == "" {
		return fmt.Errorf("nothing to verify: name at least one of --function-app, --storage-account, --app-insights, --url")
	}

	logger := telemetry.NewLogger("valvo")
	engine := retry.NewEngine(azure.NewCLIRunner(), logger)
	checker := verify.NewChecker(engine, retryPolicyFromConfig(appConfig), logger)

	result := checker.Run(ctx, targets)

	sink := summarySink(cmd.SummaryFile)
	defer func() { _ = sink.Close() }()

	// Degraded checks are findings, not failures
	return sink.Write(ctx, result.Render())
}
