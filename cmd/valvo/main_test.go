package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/valvo/config"
	"github.com/yairfalse/valvo/report"
)

func TestParseTagPairs(t *testing.T) {
	tags, err := parseTagPairs([]string{"env=ci", "owner=platform"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": "ci", "owner": "platform"}, tags)
}

func TestParseTagPairs_EmptyValueAllowed(t *testing.T) {
	tags, err := parseTagPairs([]string{"env="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": ""}, tags)
}

func TestParseTagPairs_RejectsBareKey(t *testing.T) {
	_, err := parseTagPairs([]string{"env"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
}

func TestParseTagPairs_RejectsEmptyKey(t *testing.T) {
	_, err := parseTagPairs([]string{"=ci"})
	require.Error(t, err)
}

func TestParseTagPairs_NilForNoPairs(t *testing.T) {
	tags, err := parseTagPairs(nil)
	require.NoError(t, err)
	assert.Nil(t, tags)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "flag", firstNonEmpty("flag", "config"))
	assert.Equal(t, "config", firstNonEmpty("", "config"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestRetryPolicyFromConfig(t *testing.T) {
	cfg := &config.Config{Version: "v1"}
	cfg.Retry.MaxAttempts = 7
	cfg.Retry.BaseDelaySeconds = 3

	policy := retryPolicyFromConfig(cfg)

	assert.Equal(t, 7, policy.MaxAttempts)
	assert.Equal(t, 3*time.Second, policy.BaseDelay)
}

func TestRetryPolicyFromConfig_SparseConfigKeepsDefaults(t *testing.T) {
	// A config file without a retry block must not turn retries off
	policy := retryPolicyFromConfig(&config.Config{Version: "v1"})

	defaults := config.DefaultConfig().Retry
	assert.Equal(t, defaults.MaxAttempts, policy.MaxAttempts)
	assert.Equal(t, defaults.BaseDelay(), policy.BaseDelay)
}

func TestSummarySink_StdoutOnly(t *testing.T) {
	t.Setenv("GITHUB_STEP_SUMMARY", "")

	sink := summarySink("")

	_, ok := sink.(*report.StdoutWriter)
	assert.True(t, ok, "expected a plain stdout sink, got %T", sink)
}

func TestSummarySink_ExplicitFileFansOut(t *testing.T) {
	t.Setenv("GITHUB_STEP_SUMMARY", "")

	sink := summarySink(t.TempDir() + "/summary.md")

	_, ok := sink.(*report.MultiWriter)
	assert.True(t, ok, "expected a fan-out sink, got %T", sink)
}

func TestSummarySink_PicksUpStepSummaryEnv(t *testing.T) {
	t.Setenv("GITHUB_STEP_SUMMARY", t.TempDir()+"/summary.md")

	sink := summarySink("")

	_, ok := sink.(*report.MultiWriter)
	assert.True(t, ok, "expected a fan-out sink, got %T", sink)
}

func TestApplyLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	applyLogLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	applyLogLevel("error")
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	applyLogLevel("")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestExitCodeError(t *testing.T) {
	err := exitCodeError{code: 3}
	assert.Equal(t, "exit status 3", err.Error())
}
