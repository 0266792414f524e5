// Package sequence expands a fixed library of named process templates into
// sequence-diagram source in either supported grammar.
//
// The templates are static data constructed at process start; the package
// has no dependency on the domain model and shares only the output-format
// enum with the class-diagram renderer.
package sequence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/insfabric/modelgraph/internal/types"
)

// Step is one message exchange in a process template.
type Step struct {
	From    string
	To      string
	Message string
}

// Template is an ordered participant list plus an ordered step list.
type Template struct {
	Name         string
	Title        string
	Participants []string
	Steps        []Step
}

// templates is the static process library, keyed by template name.
var templates = map[string]Template{
	"policy-creation": {
		Name:         "policy-creation",
		Title:        "Policy Creation",
		Participants: []string{"Broker", "Underwriting", "PolicyAdmin", "Billing"},
		Steps: []Step{
			{From: "Broker", To: "Underwriting", Message: "submit application"},
			{From: "Underwriting", To: "PolicyAdmin", Message: "approve risk"},
			{From: "PolicyAdmin", To: "Billing", Message: "create policy"},
			{From: "Billing", To: "Broker", Message: "issue invoice"},
		},
	},
	"claim-processing": {
		Name:         "claim-processing",
		Title:        "Claim Processing",
		Participants: []string{"Claimant", "ClaimsIntake", "Adjuster", "Payments"},
		Steps: []Step{
			{From: "Claimant", To: "ClaimsIntake", Message: "report loss"},
			{From: "ClaimsIntake", To: "Adjuster", Message: "assign claim"},
			{From: "Adjuster", To: "ClaimsIntake", Message: "confirm coverage"},
			{From: "Adjuster", To: "Payments", Message: "authorize settlement"},
			{From: "Payments", To: "Claimant", Message: "transfer payout"},
		},
	},
	"premium-calculation": {
		Name:         "premium-calculation",
		Title:        "Premium Calculation",
		Participants: []string{"PolicyAdmin", "Rating", "Tax"},
		Steps: []Step{
			{From: "PolicyAdmin", To: "Rating", Message: "request premium"},
			{From: "Rating", To: "Tax", Message: "apply tax rules"},
			{From: "Tax", To: "PolicyAdmin", Message: "return gross premium"},
		},
	},
}

// Names returns the available template names, sorted.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the named template.
func Lookup(name string) (Template, error) {
	tpl, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown process %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	out := tpl
	out.Participants = append([]string(nil), tpl.Participants...)
	out.Steps = append([]Step(nil), tpl.Steps...)
	return out, nil
}

// Render expands the named template into sequence-diagram source in the
// requested grammar.
func Render(name string, format types.DiagramFormat) (string, error) {
	tpl, err := Lookup(name)
	if err != nil {
		return "", err
	}

	switch format {
	case types.FormatMermaid:
		return renderMermaid(tpl), nil
	case types.FormatPlantUML:
		return renderPlantUML(tpl), nil
	}
	_, err = types.ParseDiagramFormat(string(format))
	return "", err
}

// renderMermaid emits synchronous call/return pairs for every step except
// the last: the terminal step gets no synthetic acknowledgment line.
func renderMermaid(tpl Template) string {
	var sb strings.Builder
	sb.WriteString("sequenceDiagram\n")
	for _, p := range tpl.Participants {
		fmt.Fprintf(&sb, "    participant %s\n", p)
	}
	for i, s := range tpl.Steps {
		fmt.Fprintf(&sb, "    %s->>%s: %s\n", s.From, s.To, s.Message)
		if i < len(tpl.Steps)-1 {
			fmt.Fprintf(&sb, "    %s-->>%s: ok\n", s.To, s.From)
		}
	}
	return sb.String()
}

func renderPlantUML(tpl Template) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@startuml %s\n", tpl.Name)
	fmt.Fprintf(&sb, "title %s\n", tpl.Title)
	for _, p := range tpl.Participants {
		fmt.Fprintf(&sb, "participant %s\n", p)
	}
	for _, s := range tpl.Steps {
		fmt.Fprintf(&sb, "%s -> %s: %s\n", s.From, s.To, s.Message)
	}
	sb.WriteString("@enduml\n")
	return sb.String()
}
