package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insfabric/modelgraph/internal/config"
	"github.com/insfabric/modelgraph/internal/renderer"
	"github.com/insfabric/modelgraph/internal/types"
	"github.com/insfabric/modelgraph/internal/validation"
)

var (
	renderFlags  RenderFlags
	renderOutput string
	renderStore  bool
)

var renderCmd = &cobra.Command{
	Use:     "render <model>",
	Aliases: []string{"r"},
	Short:   "Render a validated model as diagram source",
	Long: `Validate a domain model and render it as Mermaid or PlantUML class-diagram
source. Output goes to stdout unless --output or --store is given.

Examples:
  modelgraph render acme
  modelgraph render acme -f plantuml
  modelgraph render acme --header=false --direction LR
  modelgraph render models/acme.yaml -o acme.mmd
  modelgraph render acme --store`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	AddRenderFlags(renderCmd, &renderFlags, types.DefaultRenderOptions(types.FormatMermaid))
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write diagram source to this file")
	renderCmd.Flags().BoolVar(&renderStore, "store", false, "save the diagram into the storage directory")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	renderFlags.ApplyConfigDefaults(cmd, renderConfigDefaults(cfg))

	m, err := resolveModel(cfg, args[0])
	if err != nil {
		return err
	}
	if err := validation.ValidateModel(&m); err != nil {
		return err
	}

	opts, err := renderFlags.Options()
	if err != nil {
		return err
	}

	text, err := renderer.New().Render(m, opts)
	if err != nil {
		return err
	}

	switch {
	case renderStore:
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		path, err := store.SaveDiagram(m.Name, text, opts.Format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	case renderOutput != "":
		if err := os.WriteFile(renderOutput, []byte(text), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOutput)
	default:
		fmt.Fprint(cmd.OutOrStdout(), text)
	}
	return nil
}
