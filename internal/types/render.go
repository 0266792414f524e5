package types

import "fmt"

// DiagramFormat selects one of the two supported diagram grammars.
type DiagramFormat string

const (
	FormatMermaid  DiagramFormat = "mermaid"
	FormatPlantUML DiagramFormat = "plantuml"
)

// Valid reports whether f is a supported grammar.
func (f DiagramFormat) Valid() bool {
	return f == FormatMermaid || f == FormatPlantUML
}

func (f DiagramFormat) String() string { return string(f) }

// FileExtension returns the conventional source-file extension for the
// grammar, used by the storage package.
func (f DiagramFormat) FileExtension() string {
	switch f {
	case FormatPlantUML:
		return ".puml"
	default:
		return ".mmd"
	}
}

// ParseDiagramFormat maps a user-supplied format string to a DiagramFormat.
func ParseDiagramFormat(s string) (DiagramFormat, error) {
	switch DiagramFormat(s) {
	case FormatMermaid:
		return FormatMermaid, nil
	case FormatPlantUML:
		return FormatPlantUML, nil
	}
	return "", fmt.Errorf("unknown diagram format %q (supported: mermaid, plantuml)", s)
}

// Direction controls diagram flow. TD is an alias of TB carried over from the
// Mermaid vocabulary.
type Direction string

const (
	DirTopBottom      Direction = "TB"
	DirTopBottomAlias Direction = "TD"
	DirBottomTop      Direction = "BT"
	DirLeftRight      Direction = "LR"
	DirRightLeft      Direction = "RL"
)

// Valid reports whether d is a known direction token.
func (d Direction) Valid() bool {
	switch d {
	case DirTopBottom, DirTopBottomAlias, DirBottomTop, DirLeftRight, DirRightLeft:
		return true
	}
	return false
}

// RenderOptions controls which optional diagram sections are emitted.
type RenderOptions struct {
	Format            DiagramFormat `json:"format" yaml:"format"`
	Direction         Direction     `json:"direction" yaml:"direction"`
	ShowAttributes    bool          `json:"showAttributes" yaml:"showAttributes"`
	ShowMethods       bool          `json:"showMethods" yaml:"showMethods"`
	ShowRelationships bool          `json:"showRelationships" yaml:"showRelationships"`
	IncludeHeader     bool          `json:"includeHeader" yaml:"includeHeader"`
}

// DefaultRenderOptions returns the documented defaults: attributes on,
// methods off, relationships on, metadata header on, top-to-bottom flow.
func DefaultRenderOptions(format DiagramFormat) RenderOptions {
	return RenderOptions{
		Format:            format,
		Direction:         DirTopBottom,
		ShowAttributes:    true,
		ShowMethods:       false,
		ShowRelationships: true,
		IncludeHeader:     true,
	}
}
