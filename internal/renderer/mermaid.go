package renderer

import (
	"fmt"

	"github.com/insfabric/modelgraph/internal/types"
)

// mermaidGrammar emits Mermaid class-diagram syntax.
type mermaidGrammar struct{}

func (mermaidGrammar) Format() types.DiagramFormat { return types.FormatMermaid }

func (mermaidGrammar) Begin(_ types.DomainModel, dir types.Direction) []string {
	return []string{
		"classDiagram",
		fmt.Sprintf("    direction %s", dir),
	}
}

func (mermaidGrammar) End(types.DomainModel) []string { return nil }

func (mermaidGrammar) Comment(text string) string {
	return "    %% " + text
}

func (mermaidGrammar) ClassOpen(e types.Entity) string {
	return fmt.Sprintf("    class %s {", e.ID)
}

func (mermaidGrammar) ClassClose() string { return "    }" }

func (mermaidGrammar) AttributeLine(marker string, a types.Attribute) string {
	return "        " + memberText(marker, a, ": ")
}

func (mermaidGrammar) MethodLine(marker, name string) string {
	return fmt.Sprintf("        %s%s()", marker, name)
}

// relationship arrows per edge kind: plain directed arrow, hollow diamond,
// filled diamond, hollow triangle.
var mermaidArrows = map[types.RelationshipKind]string{
	types.RelAssociation: "-->",
	types.RelAggregation: "o--",
	types.RelComposition: "*--",
	types.RelInheritance: "--|>",
}

func (mermaidGrammar) RelationshipLine(sourceID string, rel types.Relationship, cardinality string) string {
	arrow, ok := mermaidArrows[rel.Kind]
	if !ok {
		arrow = mermaidArrows[types.RelAssociation]
	}
	line := "    " + sourceID + " " + arrow
	if cardinality != "" {
		line += fmt.Sprintf(" %q", cardinality)
	}
	line += " " + rel.TargetID
	if rel.Description != "" {
		line += " : " + rel.Description
	}
	return line
}

func (mermaidGrammar) StyleLines(entities []types.Entity) []string {
	lines := make([]string, 0, 7+len(entities))
	for _, kind := range types.AllEntityKinds() {
		s := styleTable[kind]
		lines = append(lines, fmt.Sprintf("    classDef kind%s fill:%s,stroke:%s", kind, s.Fill, s.Stroke))
	}
	for _, e := range entities {
		if _, ok := styleTable[e.Kind]; !ok {
			continue // future custom kinds stay unstyled
		}
		lines = append(lines, fmt.Sprintf("    cssClass %q kind%s", e.ID, e.Kind))
	}
	return lines
}
