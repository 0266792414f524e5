package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insfabric/modelgraph/internal/catalog"
	"github.com/insfabric/modelgraph/internal/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	m := catalog.Bootstrap("acme", "jdoe")

	require.NoError(t, s.SaveModel(m))

	loaded, err := s.LoadModel("acme")
	require.NoError(t, err)
	assert.Equal(t, m.Name, loaded.Name)
	assert.Equal(t, m.Version, loaded.Version)
	assert.Len(t, loaded.Entities, len(m.Entities))
	assert.Equal(t, m.Entities[0].ID, loaded.Entities[0].ID)
	assert.Equal(t, m.Entities[0].Relationships, loaded.Entities[0].Relationships)
	assert.Equal(t, m.Metadata.ID, loaded.Metadata.ID)
}

func TestLoadMissingModel(t *testing.T) {
	s := newStore(t)
	_, err := s.LoadModel("ghost")
	require.Error(t, err)
}

func TestLoadModelFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0o644))

	_, err := LoadModelFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding model file")
}

func TestListModels(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveModel(types.DomainModel{Name: "beta", Version: "1"}))
	require.NoError(t, s.SaveModel(types.DomainModel{Name: "alpha", Version: "1"}))

	names, err := s.ListModels()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestSaveDiagramAndExists(t *testing.T) {
	s := newStore(t)

	assert.False(t, s.DiagramExists("acme", types.FormatMermaid))

	path, err := s.SaveDiagram("acme", "classDiagram\n", types.FormatMermaid)
	require.NoError(t, err)
	assert.Equal(t, ".mmd", filepath.Ext(path))
	assert.True(t, s.DiagramExists("acme", types.FormatMermaid))
	assert.False(t, s.DiagramExists("acme", types.FormatPlantUML))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "classDiagram\n", string(data))
}

func TestModelNameCannotEscapeStore(t *testing.T) {
	s := newStore(t)
	path := s.ModelPath("../../etc/passwd")
	rel, err := filepath.Rel(s.Dir(), path)
	require.NoError(t, err)
	assert.NotContains(t, filepath.ToSlash(rel), "../",
		"sanitized path stays below the store")
}
