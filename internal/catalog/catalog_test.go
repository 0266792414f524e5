package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insfabric/modelgraph/internal/types"
)

func TestBuiltinsCoversTaxonomy(t *testing.T) {
	builtins := Builtins()
	require.Len(t, builtins, 7)

	seen := make(map[types.EntityKind]bool)
	for _, e := range builtins {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Name)
		assert.True(t, e.Kind.Valid(), "kind %q not in taxonomy", e.Kind)
		assert.Equal(t, SchemaVersion, e.SchemaVersion)
		seen[e.Kind] = true
	}
	assert.Len(t, seen, 7, "every kind appears exactly once")

	// Taxonomy order is the declared order, not map iteration order.
	assert.Equal(t, types.AllEntityKinds()[0], builtins[0].Kind)
	assert.Equal(t, types.KindClause, builtins[6].Kind)
}

func TestBuiltinRelationshipsResolveWithinCatalog(t *testing.T) {
	builtins := Builtins()
	ids := make(map[string]bool, len(builtins))
	for _, e := range builtins {
		ids[e.ID] = true
	}
	for _, e := range builtins {
		for _, rel := range e.Relationships {
			assert.True(t, ids[rel.TargetID],
				"template %q references unknown target %q", e.ID, rel.TargetID)
			assert.True(t, rel.Kind.Valid())
			assert.NotEmpty(t, rel.Cardinality)
		}
	}
}

func TestLookup(t *testing.T) {
	policy, ok := Lookup(types.KindPolicy)
	require.True(t, ok)
	assert.Equal(t, "policy", policy.ID)
	assert.Equal(t, "Policy", policy.Name)
	assert.NotEmpty(t, policy.Attributes)

	_, ok = Lookup(types.EntityKind("Starship"))
	assert.False(t, ok, "unknown kind is a miss, not an error")
}

func TestLookupReturnsFreshCopy(t *testing.T) {
	first, ok := Lookup(types.KindPolicy)
	require.True(t, ok)
	first.Attributes[0].Name = "mutated"
	first.Relationships[0].TargetID = "mutated"

	second, ok := Lookup(types.KindPolicy)
	require.True(t, ok)
	assert.Equal(t, "policyNumber", second.Attributes[0].Name,
		"caller mutation must not leak into the canonical template")
	assert.Equal(t, "coverage", second.Relationships[0].TargetID)
}

func TestBuiltinsReturnsFreshCopies(t *testing.T) {
	a := Builtins()
	a[0].Attributes = nil
	b := Builtins()
	assert.NotEmpty(t, b[0].Attributes)
}

func TestBootstrap(t *testing.T) {
	m := Bootstrap("acme-motor", "jdoe")

	assert.Equal(t, "acme-motor", m.Name)
	assert.Equal(t, "0.1.0", m.Version)
	assert.Len(t, m.Entities, 7)
	assert.Equal(t, "jdoe", m.Metadata.Author)
	assert.NotEmpty(t, m.Metadata.ID)
	assert.Equal(t, SchemaVersion, m.Metadata.SchemaVersion)
	assert.False(t, m.Metadata.Created.IsZero())
	assert.Equal(t, m.Metadata.Created, m.Metadata.Updated)
}
