// Package renderer transforms a validated domain model into diagram source
// text in one of two class-diagram grammars, Mermaid or PlantUML.
//
// The traversal is implemented once and parameterized with a Grammar
// strategy, so the two backends can never drift into semantic disagreement
// about what is shown, only how. Entities and relationships are emitted in
// the exact order they appear in the model: insertion order is rendering
// order, which makes regenerated diagrams byte-identical and diffable under
// version control.
//
// The renderer assumes its input passed validation and does not re-check
// invariants. It stays total over malformed-but-structurally-typed input: a
// dangling relationship target renders as an edge to a class that was never
// declared, which is a diagram artifact, not a program fault.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/insfabric/modelgraph/internal/types"
)

// Renderer renders domain models. Now supplies the timestamp stamped into
// the metadata comment header; tests freeze it to keep output deterministic.
type Renderer struct {
	Now func() time.Time
}

// New creates a Renderer using the wall clock.
func New() *Renderer {
	return &Renderer{Now: time.Now}
}

// Render produces diagram source for the model in the requested grammar.
// The only failure mode is an unknown format; everything else degrades
// visually instead of erroring.
func (r *Renderer) Render(m types.DomainModel, opts types.RenderOptions) (string, error) {
	g, err := grammarFor(opts.Format)
	if err != nil {
		return "", err
	}

	dir := opts.Direction
	if !dir.Valid() {
		dir = types.DirTopBottom
	}

	var lines []string
	lines = append(lines, g.Begin(m, dir)...)

	if opts.IncludeHeader {
		lines = append(lines, r.header(g, m)...)
	}

	for _, e := range m.Entities {
		lines = append(lines, g.ClassOpen(e))
		if opts.ShowAttributes {
			for _, a := range e.Attributes {
				lines = append(lines, g.AttributeLine(visibilityMarker(a.Required), a))
			}
		}
		if opts.ShowMethods {
			for _, name := range methodTable[e.Kind] {
				lines = append(lines, g.MethodLine("+", name))
			}
		}
		lines = append(lines, g.ClassClose())
	}

	if opts.ShowRelationships {
		for _, e := range m.Entities {
			for _, rel := range e.Relationships {
				card := canonicalCardinality(rel.Cardinality)
				if rel.Kind == types.RelInheritance {
					// Inheritance edges carry no multiplicity by
					// convention.
					card = ""
				}
				lines = append(lines, g.RelationshipLine(e.ID, rel, card))
			}
		}
	}

	lines = append(lines, g.StyleLines(m.Entities)...)
	lines = append(lines, g.End(m)...)

	return strings.Join(lines, "\n") + "\n", nil
}

// header emits the metadata comment block. The generation timestamp makes
// output with IncludeHeader non-idempotent across calls unless Now is
// frozen.
func (r *Renderer) header(g Grammar, m types.DomainModel) []string {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	schema := m.Metadata.SchemaVersion
	if schema == "" {
		schema = "unknown"
	}
	return []string{
		g.Comment(fmt.Sprintf("Model: %s v%s", m.Name, m.Version)),
		g.Comment(fmt.Sprintf("Generated: %s", now().UTC().Format(time.RFC3339))),
		g.Comment(fmt.Sprintf("Schema: %s", schema)),
	}
}
