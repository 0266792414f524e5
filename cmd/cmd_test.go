package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func withTempStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	viper.Set("storage.dir", dir)
	t.Cleanup(viper.Reset)
	return dir
}

func TestInitAndListRoundTrip(t *testing.T) {
	dir := withTempStore(t)

	out, err := execute(t, "init", "acme", "--author", "jdoe")
	require.NoError(t, err)
	assert.Contains(t, out, `Created model "acme" with 7 entities`)
	assert.FileExists(t, filepath.Join(dir, "models", "acme.yaml"))

	out, err = execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "acme")
}

func TestValidateStoredModel(t *testing.T) {
	withTempStore(t)

	_, err := execute(t, "init", "acme")
	require.NoError(t, err)

	out, err := execute(t, "validate", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ acme")
}

func TestValidateBrokenFileReportsViolations(t *testing.T) {
	withTempStore(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	model := `name: broken
version: 1.0.0
entities:
  - id: policy
    name: Policy
    kind: Policy
    relationships:
      - kind: aggregation
        targetEntityId: ghost
        cardinality: "1..*"
`
	require.NoError(t, os.WriteFile(path, []byte(model), 0o644))

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, `references unknown entity "ghost"`)
}

func TestRenderToStdout(t *testing.T) {
	withTempStore(t)

	_, err := execute(t, "init", "acme")
	require.NoError(t, err)

	out, err := execute(t, "render", "acme", "--header=false")
	require.NoError(t, err)
	assert.Contains(t, out, "classDiagram")
	assert.Contains(t, out, "class policy {")
	assert.NotContains(t, out, "Generated:")
}

func TestRenderPlantUML(t *testing.T) {
	withTempStore(t)

	_, err := execute(t, "init", "acme")
	require.NoError(t, err)

	out, err := execute(t, "render", "acme", "-f", "plantuml")
	require.NoError(t, err)
	assert.Contains(t, out, "@startuml acme")
	assert.Contains(t, out, "class policy <<Policy>> {")
}

func TestRenderUnknownFormat(t *testing.T) {
	withTempStore(t)

	_, err := execute(t, "init", "acme")
	require.NoError(t, err)

	_, err = execute(t, "render", "acme", "-f", "excalidraw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown diagram format")
}

func TestSequenceCommand(t *testing.T) {
	out, err := execute(t, "sequence", "policy-creation")
	require.NoError(t, err)
	assert.Contains(t, out, "sequenceDiagram")
	assert.Contains(t, out, "participant Broker")

	_, err = execute(t, "sequence", "lunch-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown process")
}

func TestListKinds(t *testing.T) {
	out, err := execute(t, "list", "--kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "Policy")
	assert.Contains(t, out, "Clause")

	// reset for other tests
	listKinds = false
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modelgraph")
}
