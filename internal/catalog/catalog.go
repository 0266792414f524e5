// Package catalog provides the immutable registry of built-in entity
// templates for the seven insurance entity kinds.
//
// The canonical templates are constructed once at process start and handed
// out by value: every accessor returns a fresh deep copy, so callers can
// freely mutate what they receive without corrupting the catalog for
// concurrent callers.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/insfabric/modelgraph/internal/types"
)

// SchemaVersion is stamped on every entity and model the catalog produces.
const SchemaVersion = "1.0"

var titleCaser = cases.Title(language.English)

// templates holds the canonical entity per kind, in taxonomy order.
// Relationship targets reference the other templates by their lowercase ids.
var templates = buildTemplates()

func buildTemplates() map[types.EntityKind]types.Entity {
	m := make(map[types.EntityKind]types.Entity, 7)
	for _, e := range []types.Entity{
		{
			ID:          "policy",
			Kind:        types.KindPolicy,
			Description: "An insurance contract between the insurer and the policyholder.",
			Attributes: []types.Attribute{
				{Name: "policyNumber", Type: "string", Required: true, Example: "POL-2024-000123"},
				{Name: "status", Type: "string", Required: true, Description: "Lifecycle status (offered, active, suspended, terminated)."},
				{Name: "inceptionDate", Type: "date", Required: true},
				{Name: "expiryDate", Type: "date"},
				{Name: "lineOfBusiness", Type: "string", Example: "motor"},
			},
			Relationships: []types.Relationship{
				{Kind: types.RelAggregation, TargetID: "coverage", Cardinality: "1..*", Description: "covers"},
				{Kind: types.RelAssociation, TargetID: "party", Cardinality: "1..*", Description: "involves"},
				{Kind: types.RelAggregation, TargetID: "premium", Cardinality: "1", Description: "priced by"},
				{Kind: types.RelAssociation, TargetID: "clause", Cardinality: "0..*", Description: "subject to"},
			},
		},
		{
			ID:          "coverage",
			Kind:        types.KindCoverage,
			Description: "A single insured risk within a policy.",
			Attributes: []types.Attribute{
				{Name: "coverageCode", Type: "string", Required: true, Example: "FIRE"},
				{Name: "name", Type: "string", Required: true},
				{Name: "sumInsured", Type: "decimal"},
				{Name: "deductible", Type: "decimal"},
			},
			Relationships: []types.Relationship{
				{Kind: types.RelAssociation, TargetID: "object", Cardinality: "0..*", Description: "applies to"},
				{Kind: types.RelComposition, TargetID: "clause", Cardinality: "0..*", Description: "restricted by"},
			},
		},
		{
			ID:          "party",
			Kind:        types.KindParty,
			Description: "A person or organization participating in the contract.",
			Attributes: []types.Attribute{
				{Name: "partyNumber", Type: "string", Required: true},
				{Name: "role", Type: "string", Required: true, Description: "policyholder, insured, beneficiary or payer."},
				{Name: "name", Type: "string", Required: true},
				{Name: "dateOfBirth", Type: "date"},
				{Name: "address", Type: "string"},
			},
			Relationships: []types.Relationship{
				{Kind: types.RelAssociation, TargetID: "claim", Cardinality: "0..*", Description: "reports"},
			},
		},
		{
			ID:          "claim",
			Kind:        types.KindClaim,
			Description: "A demand for compensation after a covered loss event.",
			Attributes: []types.Attribute{
				{Name: "claimNumber", Type: "string", Required: true, Example: "CLM-2024-004711"},
				{Name: "status", Type: "string", Required: true},
				{Name: "lossDate", Type: "date", Required: true},
				{Name: "reportedDate", Type: "date"},
				{Name: "reserveAmount", Type: "decimal"},
			},
			Relationships: []types.Relationship{
				{Kind: types.RelAssociation, TargetID: "policy", Cardinality: "1", Description: "filed against"},
				{Kind: types.RelAssociation, TargetID: "coverage", Cardinality: "1", Description: "settled under"},
				{Kind: types.RelAssociation, TargetID: "party", Cardinality: "1..*", Description: "involves"},
			},
		},
		{
			ID:          "premium",
			Kind:        types.KindPremium,
			Description: "The price of the insurance protection.",
			Attributes: []types.Attribute{
				{Name: "amount", Type: "decimal", Required: true},
				{Name: "currency", Type: "string", Required: true, Example: "EUR"},
				{Name: "paymentFrequency", Type: "string", Description: "monthly, quarterly or yearly."},
				{Name: "taxAmount", Type: "decimal"},
			},
			Relationships: []types.Relationship{
				{Kind: types.RelAssociation, TargetID: "coverage", Cardinality: "0..*", Description: "calculated from"},
			},
		},
		{
			ID:          "object",
			Kind:        types.KindObject,
			Description: "The insured object a coverage applies to.",
			Attributes: []types.Attribute{
				{Name: "objectType", Type: "string", Required: true, Example: "vehicle"},
				{Name: "description", Type: "string"},
				{Name: "value", Type: "decimal"},
			},
			Relationships: []types.Relationship{
				{Kind: types.RelAssociation, TargetID: "party", Cardinality: "1", Description: "owned by"},
			},
		},
		{
			ID:          "clause",
			Kind:        types.KindClause,
			Description: "A contractual clause restricting or extending cover.",
			Attributes: []types.Attribute{
				{Name: "clauseCode", Type: "string", Required: true},
				{Name: "text", Type: "string", Required: true},
				{Name: "category", Type: "string", Description: "exclusion, condition or extension."},
			},
			Relationships: []types.Relationship{},
		},
	} {
		e.Name = titleCaser.String(e.ID)
		e.SchemaVersion = SchemaVersion
		m[e.Kind] = e
	}
	return m
}

// Builtins returns fresh deep copies of all seven templates in taxonomy
// order.
func Builtins() []types.Entity {
	out := make([]types.Entity, 0, len(templates))
	for _, kind := range types.AllEntityKinds() {
		out = append(out, templates[kind].Clone())
	}
	return out
}

// Lookup returns a copy of the template for kind. A miss is not an error:
// the second return value is false for kinds outside the taxonomy.
func Lookup(kind types.EntityKind) (types.Entity, bool) {
	tpl, ok := templates[kind]
	if !ok {
		return types.Entity{}, false
	}
	return tpl.Clone(), true
}

// Bootstrap builds a complete starter model populated with all seven
// templates. The result is guaranteed to pass validation.
func Bootstrap(name, author string) types.DomainModel {
	now := time.Now().UTC()
	return types.DomainModel{
		Name:     name,
		Version:  "0.1.0",
		Entities: Builtins(),
		Metadata: types.ModelMetadata{
			ID:            uuid.NewString(),
			Created:       now,
			Updated:       now,
			Author:        author,
			SchemaVersion: SchemaVersion,
		},
	}
}
