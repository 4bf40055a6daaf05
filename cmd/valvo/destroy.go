package main

import (
	"context"
	"fmt"

	"github.com/yairfalse/valvo/azure"
	"github.com/yairfalse/valvo/destroy"
	"github.com/yairfalse/valvo/internal/filter"
	"github.com/yairfalse/valvo/retry"
	"github.com/yairfalse/valvo/telemetry"
)

// DestroyCommand implements the 'valvo destroy' command
type DestroyCommand struct {
	ResourceGroup   string
	Subscription    string
	Yes             bool
	Force           bool
	AllowProduction bool
	RequireTags     []string
	ExcludeTypes    []string
	IncludeTags     map[string]string
	ExcludeTags     map[string]string
}

// Run executes the destroy command
func (cmd *DestroyCommand) Run(ctx context.Context) error {
	resourceGroup := firstNonEmpty(cmd.ResourceGroup, appConfig.ResourceGroup)
	if resourceGroup == "" {
		return fmt.Errorf("resource group required: pass --resource-group or set resource_group in config")
	}

	logger := telemetry.NewLogger("valvo")

	clients, err := azure.NewClientSetResolved(ctx, firstNonEmpty(cmd.Subscription, appConfig.Subscription))
	if err != nil {
		return err
	}

	engine := retry.NewEngine(azure.NewCLIRunner(), logger)
	destroyer := destroy.NewDestroyer(clients, engine, retryPolicyFromConfig(appConfig), logger)

	targets, err := destroyer.ListTargets(ctx, resourceGroup, filter.New(cmd.ExcludeTypes, cmd.IncludeTags, cmd.ExcludeTags))
	if err != nil {
		return err
	}

	opts := destroy.Options{
		DryRun:          !cmd.Yes,
		Force:           cmd.Force,
		AllowProduction: cmd.AllowProduction || appConfig.Destroy.AllowProduction,
		RequireTags:     cmd.RequireTags,
	}
	if len(opts.RequireTags) == 0 {
		opts.RequireTags = appConfig.Destroy.RequireTags
	}

	result := destroyer.Destroy(ctx, targets, opts)

	sink := summarySink("")
	defer func() { _ = sink.Close() }()
	if err := sink.Write(ctx, result.Render()); err != nil {
		return err
	}

	if result.HardFailed() {
		return fmt.Errorf("%d of %d deletions failed", result.Failed, result.Total)
	}
	return nil
}
