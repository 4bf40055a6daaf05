package policy

import "github.com/yairfalse/valvo/types"

// ReduceCompliance folds per-resource evaluation states into one overall
// state. A single noncompliant resource makes the whole assignment
// noncompliant; otherwise one compliant resource is enough to call it
// compliant; with no usable signal the state stays unknown.
func ReduceCompliance(states []types.ComplianceState) types.ComplianceState {
	overall := types.StateUnknown
	for _, s := range states {
		if s == types.StateNonCompliant {
			return types.StateNonCompliant
		}
		if s == types.StateCompliant {
			overall = types.StateCompliant
		}
	}
	return overall
}
