package retry

import (
	"strings"

	"github.com/yairfalse/valvo/types"
)

// classificationRule pairs a match predicate with the failure class it
// yields. Rules are checked in order and the first match wins, so outputs
// quoting several error codes classify deterministically.
type classificationRule struct {
	matches func(string) bool
	class   types.FailureClass
}

func containsPattern(pattern string) func(string) bool {
	return func(output string) bool {
		return strings.Contains(output, pattern)
	}
}

// Azure error codes come back PascalCase and HTTP status codes as bare
// digits, so case sensitive substring checks are enough.
var classificationRules = []classificationRule{
	{containsPattern("AuthorizationFailed"), types.FailurePermanent},
	{containsPattern("InvalidAuthenticationToken"), types.FailurePermanent},
	{containsPattern("Forbidden"), types.FailurePermanent},
	{containsPattern("InvalidResourceGroupName"), types.FailurePermanent},
	{containsPattern("ScopeLocked"), types.FailureScopeLocked},
	{containsPattern("429"), types.FailureRateLimited},
	{containsPattern("TooManyRequests"), types.FailureRateLimited},
	{containsPattern("503"), types.FailureServiceUnavailable},
	{containsPattern("504"), types.FailureGatewayTimeout},
	{containsPattern("500"), types.FailureInternalError},
	{containsPattern("409"), types.FailureConflict},
}

// Classify maps raw command output to a failure class. Output matching
// no rule is unknown, which stays retryable.
func Classify(output string) types.FailureClass {
	for _, rule := range classificationRules {
		if rule.matches(output) {
			return rule.class
		}
	}
	return types.FailureUnknown
}
