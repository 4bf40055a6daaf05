package types

// Tags represents resource tags as a structured type
// No maps! Everything is explicit
type Tags struct {
	// Valvo management tags
	ValvoProtected bool   `json:"valvo_protected,omitempty"`
	ValvoManaged   bool   `json:"valvo_managed,omitempty"`
	ValvoOwner     string `json:"valvo_owner,omitempty"`

	// Standard infrastructure tags
	Name        string `json:"name,omitempty"`
	Environment string `json:"environment,omitempty"`
	Project     string `json:"project,omitempty"`
	Team        string `json:"team,omitempty"`
	CostCenter  string `json:"cost_center,omitempty"`

	// Azure common tags
	Owner       string `json:"owner,omitempty"`
	ManagedBy   string `json:"managed_by,omitempty"`
	DoNotDelete string `json:"do_not_delete,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	ExpiresOn   string `json:"expires_on,omitempty"`
}

// IsProtected checks if the resource should never be destroyed
func (t Tags) IsProtected() bool {
	return t.ValvoProtected || t.DoNotDelete == "true"
}

// IsManaged checks if resource is managed by Valvo
func (t Tags) IsManaged() bool {
	return t.ValvoOwner != "" || t.ValvoManaged
}

// IsProduction checks if the resource is tagged as production
func (t Tags) IsProduction() bool {
	return t.Environment == "production" || t.Environment == "prod"
}

// GetOwner returns the owner of the resource
func (t Tags) GetOwner() string {
	if t.ValvoOwner != "" {
		return t.ValvoOwner
	}
	if t.Owner != "" {
		return t.Owner
	}
	// Fallback to Team when nothing else is set
	return t.Team
}

// ToMap converts structured tags to the map shape the Azure API uses
func (t Tags) ToMap() map[string]string {
	tags := make(map[string]string)

	if t.ValvoProtected {
		tags["valvo:protected"] = "true"
	}
	if t.ValvoManaged {
		tags["valvo:managed"] = "true"
	}
	if t.ValvoOwner != "" {
		tags["valvo:owner"] = t.ValvoOwner
	}
	if t.Name != "" {
		tags["Name"] = t.Name
	}
	if t.Environment != "" {
		tags["Environment"] = t.Environment
	}
	if t.Project != "" {
		tags["Project"] = t.Project
	}
	if t.Team != "" {
		tags["Team"] = t.Team
	}
	if t.CostCenter != "" {
		tags["CostCenter"] = t.CostCenter
	}
	if t.Owner != "" {
		tags["Owner"] = t.Owner
	}
	if t.ManagedBy != "" {
		tags["ManagedBy"] = t.ManagedBy
	}
	if t.DoNotDelete != "" {
		tags["DoNotDelete"] = t.DoNotDelete
	}
	if t.CreatedBy != "" {
		tags["CreatedBy"] = t.CreatedBy
	}
	if t.ExpiresOn != "" {
		tags["ExpiresOn"] = t.ExpiresOn
	}

	return tags
}

// TagsFromMap creates structured tags from the Azure API map shape
func TagsFromMap(tagMap map[string]string) Tags {
	tags := Tags{}

	if val, ok := tagMap["valvo:protected"]; ok && val == "true" {
		tags.ValvoProtected = true
	}
	if val, ok := tagMap["valvo:managed"]; ok && val == "true" {
		tags.ValvoManaged = true
	}
	if val, ok := tagMap["valvo:owner"]; ok {
		tags.ValvoOwner = val
	}
	if val, ok := tagMap["Name"]; ok {
		tags.Name = val
	}
	if val, ok := tagMap["Environment"]; ok {
		tags.Environment = val
	}
	if val, ok := tagMap["Project"]; ok {
		tags.Project = val
	}
	if val, ok := tagMap["Team"]; ok {
		tags.Team = val
	}
	if val, ok := tagMap["CostCenter"]; ok {
		tags.CostCenter = val
	}
	if val, ok := tagMap["Owner"]; ok {
		tags.Owner = val
	}
	if val, ok := tagMap["ManagedBy"]; ok {
		tags.ManagedBy = val
	}
	if val, ok := tagMap["DoNotDelete"]; ok {
		tags.DoNotDelete = val
	}
	if val, ok := tagMap["CreatedBy"]; ok {
		tags.CreatedBy = val
	}
	if val, ok := tagMap["ExpiresOn"]; ok {
		tags.ExpiresOn = val
	}

	return tags
}
