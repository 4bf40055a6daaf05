package azure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIRunner_Success(t *testing.T) {
	runner := NewCLIRunner()

	output, exitCode, err := runner.Run(context.Background(), []string{"sh", "-c", "echo hello"})

	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "hello\n", output)
}

func TestCLIRunner_NonZeroExit(t *testing.T) {
	runner := NewCLIRunner()

	// A nonzero exit is an outcome, not a runner error
	output, exitCode, err := runner.Run(context.Background(), []string{"sh", "-c", "echo boom >&2; exit 3"})

	require.NoError(t, err)
	assert.Equal(t, 3, exitCode)
	assert.Equal(t, "boom\n", output)
}

func TestCLIRunner_CapturesBothStreams(t *testing.T) {
	runner := NewCLIRunner()

	output, exitCode, err := runner.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"})

	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, output, "out")
	assert.Contains(t, output, "err")
}

func TestCLIRunner_MissingBinary(t *testing.T) {
	runner := NewCLIRunner()

	_, exitCode, err := runner.Run(context.Background(), []string{"definitely-not-a-real-binary-4f7a"})

	require.Error(t, err)
	assert.Equal(t, -1, exitCode)
}

func TestCLIRunner_EmptyVector(t *testing.T) {
	runner := NewCLIRunner()

	_, exitCode, err := runner.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, -1, exitCode)
}

func TestCommand(t *testing.T) {
	argv := Command("policy", "assignment", "list", "-g", "rg-ci")
	assert.Equal(t, []string{"az", "policy", "assignment", "list", "-g", "rg-ci"}, argv)
}
