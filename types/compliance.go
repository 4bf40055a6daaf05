package types

// ComplianceState is the evaluation result of a resource against an
// assigned policy, or the reduced overall state of an assignment.
type ComplianceState string

const (
	StateCompliant    ComplianceState = "Compliant"
	StateNonCompliant ComplianceState = "NonCompliant"
	StateUnknown      ComplianceState = "Unknown"
)

// Known reports whether the state is one of the recognized values.
func (s ComplianceState) Known() bool {
	return s == StateCompliant || s == StateNonCompliant
}

// Enforcement modes for policy assignments. Default is the mode the
// platform assigns when none is set and renders without a suffix.
const (
	EnforcementDefault      = "Default"
	EnforcementDoNotEnforce = "DoNotEnforce"
)

// PolicyAssignment is a read-only snapshot of a policy assignment with
// its reduced overall compliance state attached. Fetched fresh per report,
// never mutated.
type PolicyAssignment struct {
	Name               string          `json:"name"`
	DisplayName        string          `json:"display_name"`
	EnforcementMode    string          `json:"enforcement_mode"`
	PolicyDefinitionID string          `json:"policy_definition_id,omitempty"`
	Description        string          `json:"description,omitempty"`
	Compliance         ComplianceState `json:"compliance"`
}

// ComplianceRecord is one (assignment, resource) evaluation row. The link
// to its assignment is name equality only, nothing referential.
type ComplianceRecord struct {
	AssignmentName string          `json:"assignment_name"`
	ResourceID     string          `json:"resource_id"`
	ResourceType   string          `json:"resource_type,omitempty"`
	Location       string          `json:"location,omitempty"`
	State          ComplianceState `json:"state"`
}

// PolicyExemption is a scoped waiver excusing resources from evaluation.
type PolicyExemption struct {
	Name               string `json:"name"`
	DisplayName        string `json:"display_name"`
	Category           string `json:"category"`
	ExpiresOn          string `json:"expires_on,omitempty"`
	Description        string `json:"description,omitempty"`
	PolicyAssignmentID string `json:"policy_assignment_id,omitempty"`
}

// NonCompliantResource is a derived row for report rendering: the failing
// resource projected down to name, type and location.
type NonCompliantResource struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location,omitempty"`
}
