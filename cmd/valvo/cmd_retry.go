package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yairfalse/valvo/azure"
	"github.com/yairfalse/valvo/retry"
	"github.com/yairfalse/valvo/telemetry"
)

var (
	retryAttempts  int
	retryBaseDelay time.Duration
	retryDescribe  string
)

// retryCmd represents the retry command
var retryCmd = &cobra.Command{
	Use:   "retry -- <command> [args...]",
	Short: "Run a command with transient-aware retries",
	Long: `Run any command under exponential backoff. Output is captured and
classified: transient Azure failures (throttling, gateway errors,
conflicts) retry with doubling delays, permanent failures
(authorization, locks, quota) stop immediately.

On success the command's output is echoed to stdout. On failure the
wrapped command's real exit status becomes valvo's exit status.`,
	Example: `  valvo retry -- az group show --name rg-ci
  valvo retry --attempts 3 -- az deployment group create -g rg-ci --template-file main.bicep
  DEPLOY_IP=$(valvo retry -- az network public-ip show -g rg-ci -n ci-ip --query ipAddress -o tsv)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRetry,
}

func init() {
	rootCmd.AddCommand(retryCmd)

	retryCmd.Flags().IntVarP(&retryAttempts, "attempts", "a", 0, "Maximum attempts (default from config)")
	retryCmd.Flags().DurationVar(&retryBaseDelay, "base-delay", 0, "First backoff delay (default from config)")
	retryCmd.Flags().StringVar(&retryDescribe, "describe", "", "Operation name for logs (default: the command itself)")
}

func runRetry(cmd *cobra.Command, args []string) error {
	logger := telemetry.NewLogger("valvo")
	engine := retry.NewEngine(azure.NewCLIRunner(), logger)

	policy := retryPolicyFromConfig(appConfig)
	if retryAttempts > 0 {
		policy.MaxAttempts = retryAttempts
	}
	if retryBaseDelay > 0 {
		policy.BaseDelay = retryBaseDelay
	}

	description := retryDescribe
	if description == "" {
		description = strings.Join(args, " ")
	}

	ctx, span := telemetry.Tracer.Start(cmd.Context(), "retry.command")
	defer span.End()

	result := engine.Do(ctx, policy, description, args)
	if !result.Succeeded {
		code := result.ExitCode
		if code <= 0 {
			code = 1
		}
		return exitCodeError{code: code}
	}

	// Stdout is the payload channel: callers capture this
	fmt.Print(result.Output)
	return nil
}
