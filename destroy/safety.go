package destroy

import (
	"fmt"
	"strings"

	"github.com/yairfalse/valvo/types"
)

// SafetyCheckFunc evaluates a single guard against a target
type SafetyCheckFunc func(r types.Resource, opts Options) SafetyCheck

// SafetyChecker runs ordered guards; the first block wins
type SafetyChecker struct {
	checks []SafetyCheckFunc
}

// NewSafetyChecker creates a checker with the standard guards
func NewSafetyChecker() *SafetyChecker {
	return &SafetyChecker{
		checks: []SafetyCheckFunc{
			checkProtectedTag,
			checkRequiredTags,
			checkProductionEnvironment,
		},
	}
}

// Check evaluates the guards in order and returns the first block.
// The second return is false when every guard passed.
func (sc *SafetyChecker) Check(r types.Resource, opts Options) (SafetyCheck, bool) {
	for _, checkFunc := range sc.checks {
		check := checkFunc(r, opts)
		if !check.Passed {
			return check, true
		}
	}
	return SafetyCheck{Passed: true}, false
}

func checkProtectedTag(r types.Resource, _ Options) SafetyCheck {
	check := SafetyCheck{
		Name:     "protected_tag",
		Passed:   true,
		Severity: SeverityCritical,
	}

	if r.IsProtected() {
		check.Passed = false
		check.Reason = fmt.Sprintf("resource %s carries a protection tag", r.Name)
	}

	return check
}

func checkRequiredTags(r types.Resource, opts Options) SafetyCheck {
	check := SafetyCheck{
		Name:     "required_tags",
		Passed:   true,
		Severity: SeverityError,
	}

	if opts.Force {
		return check
	}

	var missing []string
	for _, key := range opts.RequireTags {
		if _, ok := r.Tags[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		check.Passed = false
		check.Reason = fmt.Sprintf("resource %s is missing required tags: %s",
			r.Name, strings.Join(missing, ", "))
	}

	return check
}

func checkProductionEnvironment(r types.Resource, opts Options) SafetyCheck {
	check := SafetyCheck{
		Name:     "production_environment",
		Passed:   true,
		Severity: SeverityCritical,
	}

	if opts.AllowProduction {
		return check
	}

	env := environmentOf(r)
	if strings.EqualFold(env, "production") || strings.EqualFold(env, "prod") {
		check.Passed = false
		check.Reason = fmt.Sprintf("resource %s is tagged as %s", r.Name, env)
	}

	return check
}

func environmentOf(r types.Resource) string {
	if env := types.TagsFromMap(r.Tags).Environment; env != "" {
		return env
	}
	return r.Tags["environment"]
}
