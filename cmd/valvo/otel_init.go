package main

import (
	"context"
	"log"
	"os"

	"github.com/yairfalse/valvo/config"
	"github.com/yairfalse/valvo/telemetry"
)

var telemetryCleanup func()

// initTelemetry initializes OTEL for Valvo
// Can be disabled with VALVO_TELEMETRY_DISABLED=true
func initTelemetry(ctx context.Context, cfg *config.Config) {
	telemetryCleanup = func() {}

	if os.Getenv("VALVO_TELEMETRY_DISABLED") == "true" {
		return
	}

	endpoint := cfg.Telemetry.OTELEndpoint
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	otelCfg := telemetry.Config{
		ServiceName:    "valvo",
		ServiceVersion: version,
		Environment:    os.Getenv("VALVO_ENVIRONMENT"),
		OTELEndpoint:   endpoint,
		Insecure:       cfg.Telemetry.Insecure,
	}

	// With no endpoint the providers stay exporter-free, which still
	// keeps every instrument usable. Never fail a pipeline over OTEL.
	shutdown, err := telemetry.InitOTEL(ctx, otelCfg)
	if err != nil {
		log.Printf("⚠️  Telemetry initialization failed: %v", err)
		return
	}

	if endpoint != "" {
		log.Printf("📡 Telemetry enabled → %s", endpoint)
	}

	telemetryCleanup = func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
}

// shutdownTelemetry flushes spans and metrics before exit
func shutdownTelemetry() {
	if telemetryCleanup != nil {
		telemetryCleanup()
	}
}

// Environment variables for configuration:
// - OTEL_EXPORTER_OTLP_ENDPOINT: Where to send telemetry (no default; unset means no export)
// - VALVO_TELEMETRY_DISABLED: Set to "true" to disable telemetry
// - VALVO_ENVIRONMENT: Environment name (dev, staging, prod)
