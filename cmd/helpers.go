package cmd

import (
	"os"
	"strings"

	"github.com/insfabric/modelgraph/internal/config"
	"github.com/insfabric/modelgraph/internal/storage"
	"github.com/insfabric/modelgraph/internal/types"
)

// openStore builds the storage layer from the loaded configuration.
func openStore(cfg *config.Config) (*storage.Store, error) {
	return storage.New(cfg.Storage.Dir)
}

// resolveModel loads a model either from a YAML file path or, when the
// argument names no existing file, from the store by model name.
func resolveModel(cfg *config.Config, arg string) (types.DomainModel, error) {
	if isModelFile(arg) {
		if _, err := os.Stat(arg); err == nil {
			return storage.LoadModelFile(arg)
		}
	}
	store, err := openStore(cfg)
	if err != nil {
		return types.DomainModel{}, err
	}
	return store.LoadModel(arg)
}

// modelFilePath resolves the on-disk path behind a model argument, for the
// watch and serve commands that need a file to monitor.
func modelFilePath(cfg *config.Config, arg string) (string, error) {
	if isModelFile(arg) {
		if _, err := os.Stat(arg); err == nil {
			return arg, nil
		}
	}
	store, err := openStore(cfg)
	if err != nil {
		return "", err
	}
	path := store.ModelPath(arg)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

func isModelFile(arg string) bool {
	return strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml")
}

// renderConfigDefaults maps the config file's render section onto renderer
// options, falling back to the documented defaults for anything invalid.
func renderConfigDefaults(cfg *config.Config) types.RenderOptions {
	format, err := types.ParseDiagramFormat(cfg.Render.Format)
	if err != nil {
		format = types.FormatMermaid
	}
	opts := types.DefaultRenderOptions(format)
	if d := types.Direction(strings.ToUpper(cfg.Render.Direction)); d.Valid() {
		opts.Direction = d
	}
	opts.ShowAttributes = cfg.Render.ShowAttributes
	opts.ShowMethods = cfg.Render.ShowMethods
	opts.ShowRelationships = cfg.Render.ShowRelationships
	opts.IncludeHeader = cfg.Render.IncludeHeader
	return opts
}
