// Package validation decides whether a domain model satisfies its structural
// invariants.
//
// Validation collects every violation in a single pass instead of failing on
// the first one, so a caller can present one consolidated report. It performs
// no semantic reasoning about the insurance domain: only structural graph
// checks.
package validation

import (
	"strconv"

	"github.com/insfabric/modelgraph/internal/errors"
	"github.com/insfabric/modelgraph/internal/types"
)

// ValidateModel checks the model against its structural invariants:
//
//  1. every entity has a non-empty id, name and kind
//  2. every kind is one of the seven taxonomy values
//  3. every attribute has a non-empty name and type
//  4. every relationship has a valid kind, a target and a cardinality
//  5. entity ids are pairwise distinct
//  6. every relationship target resolves to an entity id in the same model
//
// On failure the returned error is a *errors.ModelError listing every
// violation found. A model with zero entities is structurally valid; whether
// that is useful is the caller's policy decision. The input is never
// mutated.
func ValidateModel(m *types.DomainModel) error {
	c := errors.NewCollector()

	if m.Name == "" {
		c.Add(errors.Violation{EntityIndex: -1, Field: "name", Message: "model name must not be empty"})
	}
	if m.Version == "" {
		c.Add(errors.Violation{EntityIndex: -1, Field: "version", Message: "model version must not be empty"})
	}

	for i, e := range m.Entities {
		validateEntity(c, i, e)
	}

	known := collectIDs(c, m)

	for i, e := range m.Entities {
		for j, rel := range e.Relationships {
			if rel.TargetID == "" {
				continue // already reported as a missing target
			}
			if _, ok := known[rel.TargetID]; !ok {
				c.Addf(i, e.Name, relField(j, "targetEntityId"),
					"references unknown entity %q", rel.TargetID)
			}
		}
	}

	return c.Err(m.Name)
}

// validateEntity covers the per-entity invariants 1 through 4.
func validateEntity(c *errors.Collector, i int, e types.Entity) {
	if e.ID == "" {
		c.Addf(i, e.Name, "id", "entity id must not be empty")
	}
	if e.Name == "" {
		c.Addf(i, e.Name, "name", "entity name must not be empty")
	}
	if e.Kind == "" {
		c.Addf(i, e.Name, "kind", "entity kind must not be empty")
	} else if !e.Kind.Valid() {
		c.Addf(i, e.Name, "kind", "unknown entity kind %q", e.Kind)
	}

	for j, attr := range e.Attributes {
		if attr.Name == "" {
			c.Addf(i, e.Name, attrField(j, "name"), "attribute name must not be empty")
		}
		if attr.Type == "" {
			c.Addf(i, e.Name, attrField(j, "type"), "attribute type must not be empty")
		}
	}

	for j, rel := range e.Relationships {
		if rel.Kind == "" {
			c.Addf(i, e.Name, relField(j, "kind"), "relationship kind must not be empty")
		} else if !rel.Kind.Valid() {
			c.Addf(i, e.Name, relField(j, "kind"), "unknown relationship kind %q", rel.Kind)
		}
		if rel.TargetID == "" {
			c.Addf(i, e.Name, relField(j, "targetEntityId"), "relationship target must not be empty")
		}
		if rel.Cardinality == "" {
			c.Addf(i, e.Name, relField(j, "cardinality"), "relationship cardinality must not be empty")
		}
	}
}

// collectIDs builds the known-id set and reports each duplicated id exactly
// once, no matter how often it repeats.
func collectIDs(c *errors.Collector, m *types.DomainModel) map[string]struct{} {
	counts := make(map[string]int, len(m.Entities))
	for _, e := range m.Entities {
		if e.ID != "" {
			counts[e.ID]++
		}
	}

	known := make(map[string]struct{}, len(counts))
	reported := make(map[string]bool)
	for i, e := range m.Entities {
		if e.ID == "" {
			continue
		}
		known[e.ID] = struct{}{}
		if counts[e.ID] > 1 && !reported[e.ID] {
			c.Addf(i, e.Name, "id", "duplicate entity id %q (%d occurrences)", e.ID, counts[e.ID])
			reported[e.ID] = true
		}
	}
	return known
}

func attrField(j int, field string) string {
	return "attribute[" + strconv.Itoa(j) + "]." + field
}

func relField(j int, field string) string {
	return "relationship[" + strconv.Itoa(j) + "]." + field
}
