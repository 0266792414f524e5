package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/insfabric/modelgraph/internal/types"
)

// RenderFlags holds the per-command rendering overrides shared by render,
// watch, serve and publish.
type RenderFlags struct {
	Format        string
	Direction     string
	Attributes    bool
	Methods       bool
	Relationships bool
	Header        bool
}

// AddRenderFlags registers the standard rendering flags on a command.
func AddRenderFlags(cmd *cobra.Command, flags *RenderFlags, defaults types.RenderOptions) {
	fs := cmd.Flags()
	addRenderFlagSet(fs, flags, defaults)
}

func addRenderFlagSet(fs *pflag.FlagSet, flags *RenderFlags, defaults types.RenderOptions) {
	fs.StringVarP(&flags.Format, "format", "f", string(defaults.Format), "diagram grammar (mermaid, plantuml)")
	fs.StringVar(&flags.Direction, "direction", string(defaults.Direction), "diagram direction (TB, TD, BT, LR, RL)")
	fs.BoolVar(&flags.Attributes, "attributes", defaults.ShowAttributes, "include entity attributes")
	fs.BoolVar(&flags.Methods, "methods", defaults.ShowMethods, "include canned per-kind methods")
	fs.BoolVar(&flags.Relationships, "relationships", defaults.ShowRelationships, "include relationships")
	fs.BoolVar(&flags.Header, "header", defaults.IncludeHeader, "include the metadata comment header")
}

// ApplyConfigDefaults overrides flag values from the config file for every
// flag the user did not set explicitly, so precedence stays
// flags > config file > built-in defaults.
func (f *RenderFlags) ApplyConfigDefaults(cmd *cobra.Command, cfg types.RenderOptions) {
	changed := cmd.Flags().Changed
	if !changed("format") {
		f.Format = string(cfg.Format)
	}
	if !changed("direction") {
		f.Direction = string(cfg.Direction)
	}
	if !changed("attributes") {
		f.Attributes = cfg.ShowAttributes
	}
	if !changed("methods") {
		f.Methods = cfg.ShowMethods
	}
	if !changed("relationships") {
		f.Relationships = cfg.ShowRelationships
	}
	if !changed("header") {
		f.Header = cfg.IncludeHeader
	}
}

// Options converts the flags into renderer options.
func (f *RenderFlags) Options() (types.RenderOptions, error) {
	format, err := types.ParseDiagramFormat(f.Format)
	if err != nil {
		return types.RenderOptions{}, err
	}
	return types.RenderOptions{
		Format:            format,
		Direction:         types.Direction(f.Direction),
		ShowAttributes:    f.Attributes,
		ShowMethods:       f.Methods,
		ShowRelationships: f.Relationships,
		IncludeHeader:     f.Header,
	}, nil
}
