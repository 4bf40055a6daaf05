package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"

	cfgFile      string
	logLevel     string
	otelEndpoint string

	rootCmd = &cobra.Command{
		Use:   "valvo",
		Short: "Pressure valve for Azure CI pipelines",
		Long: `Valvo - Pressure valve for Azure CI pipelines

Valvo wraps the Azure operations a pipeline runs between deploy and
teardown: transient-aware retries for az commands, policy compliance
reports, deployment verification, Key Vault secrets, and guarded
destruction of tagged resources.

Diagnostics go to stderr. Stdout carries only payload, so command
output stays capturable.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

// exitCodeError carries a process exit status through RunE. The
// failure was already reported by whoever raised it; Execute only
// maps the code.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr exitCodeError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Valvo {{.Version}} - Pressure valve for Azure CI pipelines
`)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to valvo.yaml (default: ./valvo.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&otelEndpoint, "otel-endpoint", "", "OTLP gRPC endpoint for traces and metrics (default from config or env)")
}
