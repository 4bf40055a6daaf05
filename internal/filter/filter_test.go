package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yairfalse/valvo/types"
)

const (
	typeStorage = "Microsoft.Storage/storageAccounts"
	typeSite    = "Microsoft.Web/sites"
	typeVault   = "Microsoft.KeyVault/vaults"
)

func TestShouldIncludeType_NoExclusions(t *testing.T) {
	f := New(nil, nil, nil)
	assert.True(t, f.ShouldIncludeType(typeStorage))
	assert.True(t, f.ShouldIncludeType(typeSite))
}

func TestShouldIncludeType_WithExclusions(t *testing.T) {
	f := New([]string{typeVault}, nil, nil)
	assert.True(t, f.ShouldIncludeType(typeStorage))
	assert.False(t, f.ShouldIncludeType(typeVault))
}

func TestShouldIncludeResource_NoFilters(t *testing.T) {
	f := New(nil, nil, nil)
	r := types.Resource{
		ID:   "/s/1",
		Type: typeStorage,
		Tags: map[string]string{"env": "ci"},
	}
	assert.True(t, f.ShouldIncludeResource(r))
}

func TestShouldIncludeResource_ExcludedType(t *testing.T) {
	f := New([]string{typeVault}, nil, nil)
	r := types.Resource{
		ID:   "/s/1",
		Type: typeVault,
		Tags: map[string]string{"env": "ci"},
	}
	assert.False(t, f.ShouldIncludeResource(r))
}

func TestShouldIncludeResource_IncludeTags_Match(t *testing.T) {
	f := New(nil, map[string]string{"env": "ci"}, nil)
	r := types.Resource{
		ID:   "/s/1",
		Type: typeStorage,
		Tags: map[string]string{"env": "ci", "team": "platform"},
	}
	assert.True(t, f.ShouldIncludeResource(r))
}

func TestShouldIncludeResource_IncludeTags_NoMatch(t *testing.T) {
	f := New(nil, map[string]string{"env": "ci"}, nil)
	r := types.Resource{
		ID:   "/s/1",
		Type: typeStorage,
		Tags: map[string]string{"env": "staging"},
	}
	assert.False(t, f.ShouldIncludeResource(r))
}

func TestShouldIncludeResource_IncludeTags_MultipleRequired(t *testing.T) {
	f := New(nil, map[string]string{"env": "ci", "team": "platform"}, nil)

	// Has both tags - should include
	r1 := types.Resource{
		ID:   "/s/1",
		Type: typeStorage,
		Tags: map[string]string{"env": "ci", "team": "platform"},
	}
	assert.True(t, f.ShouldIncludeResource(r1))

	// Missing one tag - should exclude
	r2 := types.Resource{
		ID:   "/s/2",
		Type: typeStorage,
		Tags: map[string]string{"env": "ci"},
	}
	assert.False(t, f.ShouldIncludeResource(r2))
}

func TestShouldIncludeResource_ExcludeTags_AnyMatch(t *testing.T) {
	// If ANY exclude tag matches, resource is excluded
	f := New(nil, nil, map[string]string{"keep": "true", "valvo:protected": "true"})

	r1 := types.Resource{
		ID:   "/s/1",
		Type: typeStorage,
		Tags: map[string]string{"keep": "true"},
	}
	assert.False(t, f.ShouldIncludeResource(r1))

	r2 := types.Resource{
		ID:   "/s/2",
		Type: typeStorage,
		Tags: map[string]string{"valvo:protected": "true"},
	}
	assert.False(t, f.ShouldIncludeResource(r2))

	r3 := types.Resource{
		ID:   "/s/3",
		Type: typeStorage,
		Tags: map[string]string{"env": "ci"},
	}
	assert.True(t, f.ShouldIncludeResource(r3))
}

func TestShouldIncludeResource_BothIncludeAndExclude(t *testing.T) {
	// Must match include AND not match exclude
	f := New(nil, map[string]string{"env": "ci"}, map[string]string{"keep": "true"})

	r1 := types.Resource{
		ID:   "/s/1",
		Type: typeStorage,
		Tags: map[string]string{"env": "ci"},
	}
	assert.True(t, f.ShouldIncludeResource(r1))

	r2 := types.Resource{
		ID:   "/s/2",
		Type: typeStorage,
		Tags: map[string]string{"env": "ci", "keep": "true"},
	}
	assert.False(t, f.ShouldIncludeResource(r2))

	r3 := types.Resource{
		ID:   "/s/3",
		Type: typeStorage,
		Tags: map[string]string{"env": "staging"},
	}
	assert.False(t, f.ShouldIncludeResource(r3))
}

func TestShouldIncludeResource_NilTags(t *testing.T) {
	f := New(nil, map[string]string{"env": "ci"}, nil)
	r := types.Resource{
		ID:   "/s/1",
		Type: typeStorage,
		Tags: nil,
	}
	assert.False(t, f.ShouldIncludeResource(r))
}

func TestFilterResources(t *testing.T) {
	f := New(nil, map[string]string{"env": "ci"}, nil)
	resources := []types.Resource{
		{ID: "/s/1", Tags: map[string]string{"env": "ci"}},
		{ID: "/s/2", Tags: map[string]string{"env": "staging"}},
		{ID: "/s/3", Tags: map[string]string{"env": "ci"}},
	}

	filtered := f.FilterResources(resources)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "/s/1", filtered[0].ID)
	assert.Equal(t, "/s/3", filtered[1].ID)
}

func TestFilterResources_EmptyFilterReturnsAll(t *testing.T) {
	f := New(nil, nil, nil)
	resources := []types.Resource{
		{ID: "/s/1"},
		{ID: "/s/2"},
	}

	assert.Len(t, f.FilterResources(resources), 2)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, New(nil, nil, nil).IsEmpty())
	assert.False(t, New([]string{typeVault}, nil, nil).IsEmpty())
	assert.False(t, New(nil, map[string]string{"env": "ci"}, nil).IsEmpty())
	assert.False(t, New(nil, nil, map[string]string{"keep": "true"}).IsEmpty())
}
