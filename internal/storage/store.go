// Package storage persists domain models and rendered diagram sources to
// the local filesystem.
//
// Models are stored as YAML under <dir>/models, diagram sources under
// <dir>/diagrams with the grammar's conventional extension. The store is the
// only component that touches the disk for model data; the core packages
// stay free of I/O.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/insfabric/modelgraph/internal/types"
)

const (
	modelsSubdir   = "models"
	diagramsSubdir = "diagrams"
)

// Store reads and writes models and diagrams below a base directory.
type Store struct {
	dir string
}

// New creates the store and its directory layout.
func New(dir string) (*Store, error) {
	for _, sub := range []string{modelsSubdir, diagramsSubdir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o750); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory.
func (s *Store) Dir() string { return s.dir }

// ModelPath returns the file path a model of the given name is stored at.
func (s *Store) ModelPath(name string) string {
	return filepath.Join(s.dir, modelsSubdir, sanitize(name)+".yaml")
}

// DiagramPath returns the file path a diagram for the model/format pair is
// stored at.
func (s *Store) DiagramPath(modelName string, format types.DiagramFormat) string {
	return filepath.Join(s.dir, diagramsSubdir, sanitize(modelName)+format.FileExtension())
}

// SaveModel writes the model as YAML, replacing any previous version.
func (s *Store) SaveModel(m types.DomainModel) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding model %q: %w", m.Name, err)
	}
	if err := os.WriteFile(s.ModelPath(m.Name), data, 0o640); err != nil {
		return fmt.Errorf("writing model %q: %w", m.Name, err)
	}
	return nil
}

// LoadModel reads a model by name.
func (s *Store) LoadModel(name string) (types.DomainModel, error) {
	return LoadModelFile(s.ModelPath(name))
}

// LoadModelFile reads a model from an arbitrary YAML file.
func LoadModelFile(path string) (types.DomainModel, error) {
	var m types.DomainModel
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading model file: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decoding model file %s: %w", path, err)
	}
	return m, nil
}

// ListModels returns the names of all stored models, sorted.
func (s *Store) ListModels() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, modelsSubdir))
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ext := filepath.Ext(name); ext == ".yaml" || ext == ".yml" {
			names = append(names, strings.TrimSuffix(name, ext))
		}
	}
	sort.Strings(names)
	return names, nil
}

// SaveDiagram writes rendered diagram source and returns its path.
func (s *Store) SaveDiagram(modelName, text string, format types.DiagramFormat) (string, error) {
	path := s.DiagramPath(modelName, format)
	if err := os.WriteFile(path, []byte(text), 0o640); err != nil {
		return "", fmt.Errorf("writing diagram for %q: %w", modelName, err)
	}
	return path, nil
}

// DiagramExists reports whether a diagram was already rendered for the
// model/format pair, for idempotent re-render decisions.
func (s *Store) DiagramExists(modelName string, format types.DiagramFormat) bool {
	_, err := os.Stat(s.DiagramPath(modelName, format))
	return err == nil
}

// sanitize keeps stored file names flat: path separators and dots collapse
// to dashes so a model name can never escape the storage directory.
func sanitize(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", "..", "-", " ", "-")
	return r.Replace(name)
}
