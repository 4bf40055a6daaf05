package destroy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/valvo/internal/filter"
	"github.com/yairfalse/valvo/retry"
	"github.com/yairfalse/valvo/telemetry"
	"github.com/yairfalse/valvo/types"
)

func TestMain(m *testing.M) {
	shutdown, err := telemetry.InitOTEL(context.Background(), telemetry.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "otel init failed: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = shutdown(context.Background())
	os.Exit(code)
}

type runStep struct {
	output   string
	exitCode int
	err      error
}

type scriptedRunner struct {
	steps []runStep
	calls int
	argv  [][]string
}

func (r *scriptedRunner) Run(_ context.Context, argv []string) (string, int, error) {
	r.argv = append(r.argv, argv)
	step := runStep{}
	if len(r.steps) > 0 {
		step = r.steps[len(r.steps)-1]
		if r.calls < len(r.steps) {
			step = r.steps[r.calls]
		}
	}
	r.calls++
	return step.output, step.exitCode, step.err
}

type fakeLister struct {
	resources []types.Resource
	err       error
}

func (f *fakeLister) ListResourceGroupResources(_ context.Context, _ string) ([]types.Resource, error) {
	return f.resources, f.err
}

func newTestDestroyer(lister ResourceLister, runner retry.Runner) (*Destroyer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := &telemetry.Logger{Logger: zerolog.New(&buf)}
	engine := retry.NewEngine(runner, logger)
	policy := retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, Sleep: func(time.Duration) {}}
	return NewDestroyer(lister, engine, policy, logger), &buf
}

func ciResource(name string) types.Resource {
	return types.Resource{
		ID:   "/subscriptions/sub/resourceGroups/rg-ci/providers/Microsoft.Storage/storageAccounts/" + name,
		Name: name,
		Type: "Microsoft.Storage/storageAccounts",
		Tags: map[string]string{"env": "ci"},
	}
}

func TestListTargets_AppliesFilter(t *testing.T) {
	keep := ciResource("stkeep")
	drop := ciResource("stdrop")
	drop.Tags = map[string]string{"env": "staging"}
	lister := &fakeLister{resources: []types.Resource{keep, drop}}
	d, _ := newTestDestroyer(lister, &scriptedRunner{})

	got, err := d.ListTargets(context.Background(), "rg-ci", filter.New(nil, map[string]string{"env": "ci"}, nil))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stkeep", got[0].Name)
}

func TestListTargets_ListerError(t *testing.T) {
	lister := &fakeLister{err: errors.New("403")}
	d, _ := newTestDestroyer(lister, &scriptedRunner{})

	_, err := d.ListTargets(context.Background(), "rg-ci", filter.New(nil, nil, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list destroy targets in rg-ci")
}

func TestDestroy_DryRunDeletesNothing(t *testing.T) {
	runner := &scriptedRunner{}
	d, _ := newTestDestroyer(&fakeLister{}, runner)
	targets := []types.Resource{ciResource("st1"), ciResource("st2")}

	result := d.Destroy(context.Background(), targets, Options{DryRun: true})

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Planned)
	assert.Equal(t, 0, result.Destroyed)
	assert.Zero(t, runner.calls)
	assert.False(t, result.HardFailed())
}

func TestDestroy_DeletesCleanTargets(t *testing.T) {
	runner := &scriptedRunner{steps: []runStep{{output: "", exitCode: 0}}}
	d, logs := newTestDestroyer(&fakeLister{}, runner)
	target := ciResource("stold")

	result := d.Destroy(context.Background(), []types.Resource{target}, Options{})

	assert.Equal(t, 1, result.Destroyed)
	assert.False(t, result.HardFailed())

	require.Len(t, runner.argv, 1)
	assert.Equal(t, []string{"az", "resource", "delete", "--ids", target.ID}, runner.argv[0])
	assert.Contains(t, logs.String(), "resource destroyed")
}

func TestDestroy_BlockedTargetNeverReachesDelete(t *testing.T) {
	runner := &scriptedRunner{}
	d, logs := newTestDestroyer(&fakeLister{}, runner)
	target := ciResource("stprod")
	target.Tags["valvo:protected"] = "true"

	result := d.Destroy(context.Background(), []types.Resource{target}, Options{})

	assert.Equal(t, 1, result.Blocked)
	assert.Zero(t, runner.calls)
	assert.False(t, result.HardFailed())
	assert.Contains(t, logs.String(), "destroy blocked by safety check")
}

func TestDestroy_ScopeLockIsSkipNotFailure(t *testing.T) {
	runner := &scriptedRunner{steps: []runStep{
		{output: "ERROR: ScopeLocked: the scope is locked by /locks/keep", exitCode: 1},
	}}
	d, _ := newTestDestroyer(&fakeLister{}, runner)

	result := d.Destroy(context.Background(), []types.Resource{ciResource("stlocked")}, Options{})

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.False(t, result.HardFailed())

	// A lock answers immediately; no retry storm
	assert.Equal(t, 1, runner.calls)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "scope is locked", result.Outcomes[0].Reason)
}

func TestDestroy_HardFailureAfterRetries(t *testing.T) {
	runner := &scriptedRunner{steps: []runStep{
		{output: "ERROR: 500 internal error", exitCode: 1},
	}}
	d, logs := newTestDestroyer(&fakeLister{}, runner)

	result := d.Destroy(context.Background(), []types.Resource{ciResource("stbroken")}, Options{})

	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HardFailed())
	assert.Equal(t, 2, runner.calls)

	require.Len(t, result.Outcomes, 1)
	assert.Contains(t, result.Outcomes[0].Reason, "after 2 attempts")
	assert.Contains(t, logs.String(), "destroy failed")
}

func TestDestroy_MixedRun(t *testing.T) {
	runner := &scriptedRunner{steps: []runStep{{output: "", exitCode: 0}}}
	d, _ := newTestDestroyer(&fakeLister{}, runner)

	protected := ciResource("stkeep")
	protected.Tags["DoNotDelete"] = "true"
	targets := []types.Resource{ciResource("stold"), protected}

	result := d.Destroy(context.Background(), targets, Options{})

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Destroyed)
	assert.Equal(t, 1, result.Blocked)
	assert.Equal(t, 1, runner.calls)
}

func TestResult_Render(t *testing.T) {
	result := Result{}
	result.Total = 2
	result.add(Outcome{Resource: ciResource("stold"), Status: StatusDestroyed})
	result.add(Outcome{Resource: ciResource("stkeep"), Status: StatusBlocked, Reason: "carries a protection tag"})

	rendered := result.Render()

	assert.Contains(t, rendered, "## Destruction summary")
	assert.Contains(t, rendered, "| stold | Microsoft.Storage/storageAccounts | destroyed |")
	assert.Contains(t, rendered, "| stkeep | Microsoft.Storage/storageAccounts | blocked | carries a protection tag |")
	assert.Contains(t, rendered, "0 planned, 1 destroyed, 1 blocked, 0 skipped, 0 failed")
}

func TestResult_Render_NoTargets(t *testing.T) {
	result := Result{}

	assert.Contains(t, result.Render(), "No matching resources")
}
