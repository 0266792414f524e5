package renderer

import (
	"fmt"

	"github.com/insfabric/modelgraph/internal/types"
)

// plantUMLGrammar emits PlantUML class-diagram syntax.
type plantUMLGrammar struct{}

func (plantUMLGrammar) Format() types.DiagramFormat { return types.FormatPlantUML }

func (plantUMLGrammar) Begin(m types.DomainModel, dir types.Direction) []string {
	lines := []string{"@startuml " + m.Name}
	// PlantUML only distinguishes vertical from horizontal flow.
	switch dir {
	case types.DirLeftRight, types.DirRightLeft:
		lines = append(lines, "left to right direction")
	default:
		lines = append(lines, "top to bottom direction")
	}
	return lines
}

func (plantUMLGrammar) End(types.DomainModel) []string {
	return []string{"@enduml"}
}

func (plantUMLGrammar) Comment(text string) string {
	return "' " + text
}

func (plantUMLGrammar) ClassOpen(e types.Entity) string {
	if _, ok := styleTable[e.Kind]; ok {
		return fmt.Sprintf("class %s <<%s>> {", e.ID, e.Kind)
	}
	return fmt.Sprintf("class %s {", e.ID)
}

func (plantUMLGrammar) ClassClose() string { return "}" }

func (plantUMLGrammar) AttributeLine(marker string, a types.Attribute) string {
	return "  " + memberText(marker, a, " : ")
}

func (plantUMLGrammar) MethodLine(marker, name string) string {
	return fmt.Sprintf("  %s%s()", marker, name)
}

var plantUMLArrows = map[types.RelationshipKind]string{
	types.RelAssociation: "-->",
	types.RelAggregation: "o--",
	types.RelComposition: "*--",
	types.RelInheritance: "--|>",
}

func (plantUMLGrammar) RelationshipLine(sourceID string, rel types.Relationship, cardinality string) string {
	arrow, ok := plantUMLArrows[rel.Kind]
	if !ok {
		arrow = plantUMLArrows[types.RelAssociation]
	}
	line := sourceID + " " + arrow
	if cardinality != "" {
		line += fmt.Sprintf(" %q", cardinality)
	}
	line += " " + rel.TargetID
	if rel.Description != "" {
		line += " : " + rel.Description
	}
	return line
}

func (plantUMLGrammar) StyleLines([]types.Entity) []string {
	lines := make([]string, 0, 17)
	lines = append(lines, "skinparam class {")
	for _, kind := range types.AllEntityKinds() {
		s := styleTable[kind]
		lines = append(lines,
			fmt.Sprintf("  BackgroundColor<<%s>> %s", kind, s.Fill),
			fmt.Sprintf("  BorderColor<<%s>> %s", kind, s.Stroke),
		)
	}
	lines = append(lines, "}")
	return lines
}
