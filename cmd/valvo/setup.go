package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yairfalse/valvo/config"
	"github.com/yairfalse/valvo/report"
	"github.com/yairfalse/valvo/retry"
)

// appConfig holds the resolved configuration for the running command
var appConfig *config.Config

// setup resolves config and telemetry before any subcommand runs.
// Flags override file values.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Telemetry.LogLevel = logLevel
	}
	if otelEndpoint != "" {
		cfg.Telemetry.OTELEndpoint = otelEndpoint
	}
	appConfig = cfg

	applyLogLevel(cfg.Telemetry.LogLevel)
	initTelemetry(cmd.Context(), cfg)
	return nil
}

// loadSettings loads valvo.yaml, falling back to defaults when absent.
// An explicit --config path must exist; the implicit one is optional.
func loadSettings() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadConfig(cfgFile)
	}
	if _, err := os.Stat("valvo.yaml"); err == nil {
		return config.LoadConfig("valvo.yaml")
	}
	return config.DefaultConfig(), nil
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// retryPolicyFromConfig builds the engine policy. Config files may omit
// the retry block; unset fields fall back to the defaults.
func retryPolicyFromConfig(cfg *config.Config) retry.Policy {
	defaults := config.DefaultConfig().Retry
	attempts := cfg.Retry.MaxAttempts
	if attempts < 1 {
		attempts = defaults.MaxAttempts
	}
	delay := cfg.Retry.BaseDelay()
	if delay <= 0 {
		delay = defaults.BaseDelay()
	}
	return retry.Policy{MaxAttempts: attempts, BaseDelay: delay}
}

// summarySink routes reports to stdout and, when a summary file is
// known, appends them there too. GITHUB_STEP_SUMMARY makes reports
// land in the CI job summary without any flag.
func summarySink(summaryFile string) report.SummaryWriter {
	if summaryFile == "" {
		summaryFile = os.Getenv("GITHUB_STEP_SUMMARY")
	}
	if summaryFile == "" {
		return report.NewStdoutWriter()
	}
	return report.NewMultiWriter(report.NewStdoutWriter(), report.NewFileWriter(summaryFile))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseTagPairs turns repeated key=value flags into a tag map
func parseTagPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid tag %q: expected key=value", pair)
		}
		tags[key] = value
	}
	return tags, nil
}
