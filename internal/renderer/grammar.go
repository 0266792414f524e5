package renderer

import (
	"github.com/insfabric/modelgraph/internal/types"
)

// Grammar is the strategy interface the shared traversal is parameterized
// with. Implementations supply only token vocabulary: class delimiters,
// arrow syntax, comment syntax, style syntax. Everything the two grammars
// must agree on semantically (traversal order, visibility policy,
// cardinality canonicalization, the method and style tables) lives in the
// shared renderer, so the two outputs can differ in surface syntax only.
type Grammar interface {
	// Format identifies the grammar.
	Format() types.DiagramFormat
	// Begin emits the diagram root token and direction directive.
	Begin(m types.DomainModel, dir types.Direction) []string
	// End emits trailing tokens, if the grammar has any.
	End(m types.DomainModel) []string
	// Comment formats one comment line.
	Comment(text string) string
	// ClassOpen opens a class block for the entity.
	ClassOpen(e types.Entity) string
	// ClassClose closes a class block.
	ClassClose() string
	// AttributeLine formats one indented attribute member line.
	AttributeLine(marker string, a types.Attribute) string
	// MethodLine formats one indented canned method member line.
	MethodLine(marker, name string) string
	// RelationshipLine formats one edge. cardinality is already
	// canonicalized and empty for inheritance edges.
	RelationshipLine(sourceID string, rel types.Relationship, cardinality string) string
	// StyleLines emits the static per-kind styling block for the given
	// entities. Entities with unknown kinds receive no style.
	StyleLines(entities []types.Entity) []string
}

// cardinalityCanonical normalizes the common multiplicity spellings. Anything
// outside this table is passed through verbatim: unrecognized cardinalities
// are a diagram artifact, not an error.
var cardinalityCanonical = map[string]string{
	"1":    "1",
	"0..1": "0..1",
	"1..*": "1..*",
	"0..*": "0..*",
	"*":    "0..*",
}

func canonicalCardinality(raw string) string {
	if c, ok := cardinalityCanonical[raw]; ok {
		return c
	}
	return raw
}

// methodTable maps each kind to its canned method names. These are
// decorative scaffolding for the diagram, not derived from the model.
var methodTable = map[types.EntityKind][]string{
	types.KindPolicy:   {"issue", "renew", "terminate"},
	types.KindCoverage: {"activate", "suspend"},
	types.KindParty:    {"updateContact"},
	types.KindClaim:    {"open", "assess", "settle", "close"},
	types.KindPremium:  {"calculate", "applyTax"},
	types.KindObject:   {"appraise"},
	types.KindClause:   {"applyTo"},
}

// kindStyle is the canned visual style for one entity kind, shared by both
// grammars so the diagrams stay visually equivalent.
type kindStyle struct {
	Fill   string
	Stroke string
}

var styleTable = map[types.EntityKind]kindStyle{
	types.KindPolicy:   {Fill: "#d0e2f2", Stroke: "#1f5a8a"},
	types.KindCoverage: {Fill: "#d9ead3", Stroke: "#38761d"},
	types.KindParty:    {Fill: "#fff2cc", Stroke: "#bf9000"},
	types.KindClaim:    {Fill: "#f4cccc", Stroke: "#990000"},
	types.KindPremium:  {Fill: "#d9d2e9", Stroke: "#674ea7"},
	types.KindObject:   {Fill: "#fce5cd", Stroke: "#b45309"},
	types.KindClause:   {Fill: "#ead1dc", Stroke: "#a64d79"},
}

// visibilityMarker maps the attribute's required flag to the cosmetic
// member marker both grammars share. This is not an access-control concept,
// only a convention carried over from the source data.
func visibilityMarker(required bool) string {
	if required {
		return "+"
	}
	return "-"
}

// memberText builds the grammar-independent part of an attribute member
// line. Both grammars share the marker and description policy and differ
// only in the name/type separator.
func memberText(marker string, a types.Attribute, typeSep string) string {
	text := marker + a.Name + typeSep + a.Type
	if a.Description != "" {
		text += " - " + a.Description
	}
	return text
}

func grammarFor(format types.DiagramFormat) (Grammar, error) {
	switch format {
	case types.FormatMermaid:
		return mermaidGrammar{}, nil
	case types.FormatPlantUML:
		return plantUMLGrammar{}, nil
	}
	_, err := types.ParseDiagramFormat(string(format))
	return nil, err
}
