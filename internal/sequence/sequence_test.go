package sequence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insfabric/modelgraph/internal/types"
)

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"claim-processing", "policy-creation", "premium-calculation"}, names)
}

func TestLookupUnknownProcess(t *testing.T) {
	_, err := Lookup("coffee-break")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown process "coffee-break"`)
	assert.Contains(t, err.Error(), "policy-creation", "error lists the available templates")
}

func TestLookupReturnsCopy(t *testing.T) {
	tpl, err := Lookup("policy-creation")
	require.NoError(t, err)
	tpl.Participants[0] = "Pirate"
	tpl.Steps[0].Message = "plunder"

	again, err := Lookup("policy-creation")
	require.NoError(t, err)
	assert.Equal(t, "Broker", again.Participants[0])
	assert.Equal(t, "submit application", again.Steps[0].Message)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render("policy-creation", "ascii-art")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown diagram format")
}

func TestMermaidPolicyCreation(t *testing.T) {
	out, err := Render("policy-creation", types.FormatMermaid)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "sequenceDiagram\n"))

	tpl, err := Lookup("policy-creation")
	require.NoError(t, err)

	// Every participant is declared, in listed order.
	lastIdx := -1
	for _, p := range tpl.Participants {
		idx := strings.Index(out, "participant "+p)
		require.GreaterOrEqual(t, idx, 0, "participant %s missing", p)
		assert.Greater(t, idx, lastIdx, "participant %s out of order", p)
		lastIdx = idx
	}

	// One message line per step.
	for _, s := range tpl.Steps {
		assert.Contains(t, out, s.From+"->>"+s.To+": "+s.Message)
	}
}

func TestMermaidTerminalStepHasNoReturn(t *testing.T) {
	out, err := Render("policy-creation", types.FormatMermaid)
	require.NoError(t, err)

	// Three returns for four steps: the terminal step is not acknowledged.
	assert.Equal(t, 3, strings.Count(out, "-->>"))
	assert.False(t, strings.Contains(out, "Broker-->>Billing"),
		"no synthetic return after the final step")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[len(lines)-1], "Billing->>Broker: issue invoice")
}

func TestPlantUMLClaimProcessing(t *testing.T) {
	out, err := Render("claim-processing", types.FormatPlantUML)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "@startuml claim-processing\n"))
	assert.True(t, strings.HasSuffix(out, "@enduml\n"))
	assert.Contains(t, out, "title Claim Processing")
	assert.Contains(t, out, "participant Claimant")
	assert.Contains(t, out, "Claimant -> ClaimsIntake: report loss")
	assert.Contains(t, out, "Payments -> Claimant: transfer payout")
	assert.NotContains(t, out, "-->>", "plantuml variant emits plain arrows only")
}

func TestAllTemplatesRenderInBothGrammars(t *testing.T) {
	for _, name := range Names() {
		for _, format := range []types.DiagramFormat{types.FormatMermaid, types.FormatPlantUML} {
			out, err := Render(name, format)
			require.NoError(t, err, "%s/%s", name, format)
			assert.NotEmpty(t, out)
		}
	}
}
