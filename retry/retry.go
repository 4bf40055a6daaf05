// Package retry runs commands with classified exponential backoff.
package retry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/valvo/telemetry"
	"github.com/yairfalse/valvo/types"
)

// DefaultBaseDelay is the initial backoff when a policy does not set one.
const DefaultBaseDelay = 2 * time.Second

// Runner executes a command vector and returns its combined
// stdout and stderr output
type Runner interface {
	Run(ctx context.Context, argv []string) (output string, exitCode int, err error)
}

// Policy controls the attempt budget and the wait between attempts
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       func(time.Duration)
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.Sleep == nil {
		p.Sleep = time.Sleep
	}
	return p
}

// Result is the outcome of a retried operation
type Result struct {
	Succeeded bool
	Class     types.FailureClass
	Output    string
	Attempts  int
	ExitCode  int
}

// Engine runs commands through a runner and retries transient failures
type Engine struct {
	runner Runner
	logger *telemetry.Logger
}

// NewEngine creates a retry engine
func NewEngine(runner Runner, logger *telemetry.Logger) *Engine {
	return &Engine{
		runner: runner,
		logger: logger,
	}
}

// Do runs argv until it succeeds, hits a terminal failure class, or
// exhausts the attempt budget. Backoff starts at the policy base delay
// and doubles after every failed attempt, no jitter, no cap. The final
// output stays in the result; everything the engine says about the run
// goes to the log, never to stdout.
func (e *Engine) Do(ctx context.Context, policy Policy, description string, argv []string) Result {
	policy = policy.withDefaults()
	span := trace.SpanFromContext(ctx)
	log := e.logger.WithContext(ctx)

	delay := policy.BaseDelay
	var result Result

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		telemetry.RetryAttempts.Add(ctx, 1)

		output, exitCode, err := e.runner.Run(ctx, argv)
		result = Result{
			Output:   output,
			Attempts: attempt,
			ExitCode: exitCode,
		}

		if err == nil && exitCode == 0 {
			result.Succeeded = true
			if attempt > 1 {
				log.Info().
					Str("operation", description).
					Int("attempt", attempt).
					Msg("succeeded after retry")
			}
			return result
		}

		class := Classify(output)
		result.Class = class

		if class.Terminal() {
			msg := "permanent failure, not retrying"
			if class == types.FailureScopeLocked {
				msg = "scope locked, not retrying"
			}
			log.Error().
				Str("operation", description).
				Str("error_type", string(class)).
				Int("attempt", attempt).
				Int("exit_code", exitCode).
				Str("output", output).
				Msg(msg)
			telemetry.RecordOperationFailedEvent(span, description, string(class), attempt, exitCode)
			return result
		}

		if attempt == policy.MaxAttempts {
			log.Error().
				Str("operation", description).
				Str("error_type", string(class)).
				Int("attempts", attempt).
				Int("exit_code", exitCode).
				Str("output", output).
				Msg("failed after all attempts")
			telemetry.RecordOperationFailedEvent(span, description, string(class), attempt, exitCode)
			return result
		}

		warn := log.Warn().
			Str("operation", description).
			Str("error_type", string(class)).
			Dur("retry_in", delay).
			Int("attempt", attempt).
			Int("max_attempts", policy.MaxAttempts)
		if err != nil {
			warn = warn.Err(err)
		}
		if class == types.FailureUnknown {
			warn = warn.Str("output", output)
		}
		warn.Msg("transient failure, backing off")

		telemetry.RecordOperationRetriedEvent(span, description, string(class), attempt, delay.Seconds())

		policy.Sleep(delay)
		delay *= 2
	}

	return result
}
