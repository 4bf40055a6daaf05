package main

import (
	"context"
	"fmt"

	"github.com/yairfalse/valvo/azure"
	"github.com/yairfalse/valvo/policy"
	"github.com/yairfalse/valvo/report"
	"github.com/yairfalse/valvo/telemetry"
)

// PolicyReportCommand implements the 'valvo policy report' command
type PolicyReportCommand struct {
	ResourceGroup string
	Subscription  string
	SummaryFile   string
}

// Run executes the policy report command
func (cmd *PolicyReportCommand) Run(ctx context.Context) error {
	resourceGroup := firstNonEmpty(cmd.ResourceGroup, appConfig.ResourceGroup)
	if resourceGroup == "" {
		return fmt.Errorf("resource group required: pass --resource-group or set resource_group in config")
	}

	logger := telemetry.NewLogger("valvo")

	clients, err := azure.NewClientSetResolved(ctx, firstNonEmpty(cmd.Subscription, appConfig.Subscription))
	if err != nil {
		return err
	}

	sink := summarySink(cmd.SummaryFile)
	defer func() { _ = sink.Close() }()

	reporter := report.NewReporter(policy.NewAggregator(clients, logger), sink, logger)
	return reporter.Run(ctx, resourceGroup)
}
