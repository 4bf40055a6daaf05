package types

// FailureClass categorizes a failed Azure operation by its output text.
// The CLI reuses exit code 1 for everything, so the message is the only
// signal separating transient noise from a hard stop.
type FailureClass string

const (
	FailurePermanent          FailureClass = "permanent"
	FailureScopeLocked        FailureClass = "scope_locked"
	FailureRateLimited        FailureClass = "rate_limited"
	FailureServiceUnavailable FailureClass = "service_unavailable"
	FailureGatewayTimeout     FailureClass = "gateway_timeout"
	FailureInternalError      FailureClass = "internal_error"
	FailureConflict           FailureClass = "conflict"
	FailureUnknown            FailureClass = "unknown"
)

// Terminal reports whether retrying can never help this class.
func (c FailureClass) Terminal() bool {
	return c == FailurePermanent || c == FailureScopeLocked
}
