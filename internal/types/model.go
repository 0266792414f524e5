// Package types provides the shared data model for the modelgraph CLI.
// This package contains the domain model, diagram, and rendering types used
// by the catalog, validation, renderer, and storage packages; keeping them
// here avoids circular dependencies between those packages.
package types

import "time"

// EntityKind classifies an entity into the fixed insurance taxonomy. The set
// of kinds is closed: the catalog, the per-kind method tables, and the
// diagram style tables are all keyed by it, so adding a kind is a single
// compiler-checked edit point.
type EntityKind string

const (
	KindPolicy   EntityKind = "Policy"
	KindCoverage EntityKind = "Coverage"
	KindParty    EntityKind = "Party"
	KindClaim    EntityKind = "Claim"
	KindPremium  EntityKind = "Premium"
	KindObject   EntityKind = "Object"
	KindClause   EntityKind = "Clause"
)

// AllEntityKinds returns the fixed taxonomy in canonical order.
func AllEntityKinds() []EntityKind {
	return []EntityKind{
		KindPolicy,
		KindCoverage,
		KindParty,
		KindClaim,
		KindPremium,
		KindObject,
		KindClause,
	}
}

// Valid reports whether k is one of the seven known kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindPolicy, KindCoverage, KindParty, KindClaim, KindPremium, KindObject, KindClause:
		return true
	}
	return false
}

func (k EntityKind) String() string { return string(k) }

// RelationshipKind describes the semantics of a directed edge between two
// entities.
type RelationshipKind string

const (
	RelAssociation RelationshipKind = "association"
	RelAggregation RelationshipKind = "aggregation"
	RelComposition RelationshipKind = "composition"
	RelInheritance RelationshipKind = "inheritance"
)

// Valid reports whether k is one of the four supported edge kinds.
func (k RelationshipKind) Valid() bool {
	switch k {
	case RelAssociation, RelAggregation, RelComposition, RelInheritance:
		return true
	}
	return false
}

func (k RelationshipKind) String() string { return string(k) }

// Attribute is a named, typed field owned by an entity. Type is a free-form
// type name; Required only drives the cosmetic visibility marker in rendered
// diagrams.
type Attribute struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalRef string `json:"externalRef,omitempty" yaml:"externalRef,omitempty"`
	Example     string `json:"example,omitempty" yaml:"example,omitempty"`
}

// Relationship is a directed edge owned by its source entity. TargetID must
// resolve to an entity id within the same model; that invariant is enforced
// by the validation package, not here.
type Relationship struct {
	Kind        RelationshipKind `json:"kind" yaml:"kind"`
	TargetID    string           `json:"targetEntityId" yaml:"targetEntityId"`
	Cardinality string           `json:"cardinality" yaml:"cardinality"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

// Entity is a typed node in a domain model. Attributes and relationships are
// owned exclusively by the entity; entities are never shared by reference
// across models.
type Entity struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Kind          EntityKind     `json:"kind" yaml:"kind"`
	Attributes    []Attribute    `json:"attributes" yaml:"attributes"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
	ExternalRef   string         `json:"externalRef,omitempty" yaml:"externalRef,omitempty"`
	SchemaVersion string         `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
}

// Clone returns a deep copy of the entity. The catalog hands out clones so
// callers can never mutate the canonical templates.
func (e Entity) Clone() Entity {
	out := e
	out.Attributes = make([]Attribute, len(e.Attributes))
	copy(out.Attributes, e.Attributes)
	out.Relationships = make([]Relationship, len(e.Relationships))
	copy(out.Relationships, e.Relationships)
	return out
}

// ModelMetadata records provenance for a domain model.
type ModelMetadata struct {
	ID            string    `json:"id,omitempty" yaml:"id,omitempty"`
	Created       time.Time `json:"created" yaml:"created"`
	Updated       time.Time `json:"updated" yaml:"updated"`
	Author        string    `json:"author,omitempty" yaml:"author,omitempty"`
	SchemaVersion string    `json:"schemaVersion" yaml:"schemaVersion"`
}

// DomainModel is the unit of validation and rendering: a named, versioned,
// ordered collection of entities. Entity order is rendering order, so
// regenerating an unchanged model yields byte-identical diagram source.
type DomainModel struct {
	Name        string        `json:"name" yaml:"name"`
	Version     string        `json:"version" yaml:"version"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Namespace   string        `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Entities    []Entity      `json:"entities" yaml:"entities"`
	Metadata    ModelMetadata `json:"metadata" yaml:"metadata"`
}

// Clone returns a deep copy of the model.
func (m DomainModel) Clone() DomainModel {
	out := m
	out.Entities = make([]Entity, len(m.Entities))
	for i, e := range m.Entities {
		out.Entities[i] = e.Clone()
	}
	return out
}

// EntityIDs returns the set of entity ids present in the model.
func (m DomainModel) EntityIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(m.Entities))
	for _, e := range m.Entities {
		ids[e.ID] = struct{}{}
	}
	return ids
}
