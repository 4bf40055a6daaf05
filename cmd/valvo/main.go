// Valvo - Pressure valve for Azure CI pipelines
// Retry. Report. Verify. Destroy.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := Execute(ctx)

	cancel()
	shutdownTelemetry()
	os.Exit(code)
}
