// Package filter selects destruction candidates by resource type and tags.
package filter

import (
	"github.com/yairfalse/valvo/types"
)

// Filter controls which resource types may be targeted and which
// resources pass the tag gates.
type Filter struct {
	excludeTypes map[string]bool
	includeTags  map[string]string
	excludeTags  map[string]string
}

// New creates a new Filter from the provided configuration.
func New(excludeTypes []string, includeTags, excludeTags map[string]string) *Filter {
	excludeMap := make(map[string]bool)
	for _, t := range excludeTypes {
		excludeMap[t] = true
	}

	return &Filter{
		excludeTypes: excludeMap,
		includeTags:  includeTags,
		excludeTags:  excludeTags,
	}
}

// ShouldIncludeType returns true if the given resource type may be targeted.
func (f *Filter) ShouldIncludeType(typ string) bool {
	return !f.excludeTypes[typ]
}

// ShouldIncludeResource returns true if the resource passes the type and
// tag filters.
func (f *Filter) ShouldIncludeResource(r types.Resource) bool {
	if !f.ShouldIncludeType(r.Type) {
		return false
	}

	// Include tags (whitelist) - ALL must match
	if len(f.includeTags) > 0 {
		for k, v := range f.includeTags {
			if r.Tags == nil || r.Tags[k] != v {
				return false
			}
		}
	}

	// Exclude tags (blacklist) - ANY match excludes
	if len(f.excludeTags) > 0 {
		for k, v := range f.excludeTags {
			if r.Tags != nil && r.Tags[k] == v {
				return false
			}
		}
	}

	return true
}

// FilterResources returns only resources that pass the filter.
func (f *Filter) FilterResources(resources []types.Resource) []types.Resource {
	if f.IsEmpty() {
		return resources
	}

	filtered := make([]types.Resource, 0, len(resources))
	for _, r := range resources {
		if f.ShouldIncludeResource(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// IsEmpty returns true if no filters are configured.
func (f *Filter) IsEmpty() bool {
	return len(f.excludeTypes) == 0 && len(f.includeTags) == 0 && len(f.excludeTags) == 0
}
