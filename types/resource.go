package types

import "strings"

// Resource represents an Azure resource (function app, storage account, vault, etc)
type Resource struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Location      string            `json:"location"`
	ResourceGroup string            `json:"resource_group"`
	Status        string            `json:"status,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

// ResourceFilter for selecting resources
type ResourceFilter struct {
	Type string            `json:"type,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
	IDs  []string          `json:"ids,omitempty"`
}

// IsProtected checks if resource should never be destroyed
func (r *Resource) IsProtected() bool {
	return TagsFromMap(r.Tags).IsProtected()
}

// Matches checks if resource matches filter criteria
func (r *Resource) Matches(filter ResourceFilter) bool {
	return r.matchesType(filter) && r.matchesIDs(filter) && r.matchesTags(filter)
}

func (r *Resource) matchesType(filter ResourceFilter) bool {
	if filter.Type == "" {
		return true
	}
	return strings.EqualFold(r.Type, filter.Type)
}

// matchesIDs checks if resource ID is in filter list
func (r *Resource) matchesIDs(filter ResourceFilter) bool {
	if len(filter.IDs) == 0 {
		return true
	}
	for _, id := range filter.IDs {
		if strings.EqualFold(r.ID, id) {
			return true
		}
	}
	return false
}

// matchesTags checks if all filter tags match resource tags
func (r *Resource) matchesTags(filter ResourceFilter) bool {
	for key, value := range filter.Tags {
		if r.Tags[key] != value {
			return false
		}
	}
	return true
}

// LastSegment returns the trailing path segment of an Azure resource ID.
// Returns the input unchanged when it contains no separator.
func LastSegment(id string) string {
	if id == "" {
		return ""
	}
	trimmed := strings.TrimRight(id, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}
