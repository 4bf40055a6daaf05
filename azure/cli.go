// Package azure wraps the Azure CLI and management plane clients.
package azure

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Command builds an az command vector
func Command(args ...string) []string {
	return append([]string{"az"}, args...)
}

// CLIRunner executes command vectors and captures combined stdout and
// stderr, which is what failure classification inspects
type CLIRunner struct{}

// NewCLIRunner creates a runner for real subprocess execution
func NewCLIRunner() *CLIRunner {
	return &CLIRunner{}
}

// Run executes argv[0] with the remaining vector as arguments. A nonzero
// exit from the command is not a runner error; the exit code and output
// carry the outcome.
func (r *CLIRunner) Run(ctx context.Context, argv []string) (string, int, error) {
	if len(argv) == 0 {
		return "", -1, fmt.Errorf("empty command vector")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), nil
		}
		return output, -1, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	return output, 0, nil
}
