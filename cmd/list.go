package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/insfabric/modelgraph/internal/catalog"
	"github.com/insfabric/modelgraph/internal/config"
	"github.com/insfabric/modelgraph/internal/sequence"
)

var (
	listFormat    string
	listKinds     bool
	listTemplates bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List stored models, catalog kinds, or process templates",
	Long: `List the models in the storage directory. With --kinds, list the entity
catalog instead; with --templates, list the sequence process templates.

Examples:
  modelgraph list                 # stored models
  modelgraph list --kinds         # entity catalog with attribute counts
  modelgraph list --templates     # sequence process templates
  modelgraph list --format json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFormat, "format", "table", "output format (table, json, yaml)")
	listCmd.Flags().BoolVar(&listKinds, "kinds", false, "list the built-in entity catalog")
	listCmd.Flags().BoolVar(&listTemplates, "templates", false, "list the process templates")
}

type kindRow struct {
	Kind          string `json:"kind" yaml:"kind"`
	ID            string `json:"id" yaml:"id"`
	Attributes    int    `json:"attributes" yaml:"attributes"`
	Relationships int    `json:"relationships" yaml:"relationships"`
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	switch {
	case listKinds:
		rows := make([]kindRow, 0, 7)
		for _, e := range catalog.Builtins() {
			rows = append(rows, kindRow{
				Kind:          string(e.Kind),
				ID:            e.ID,
				Attributes:    len(e.Attributes),
				Relationships: len(e.Relationships),
			})
		}
		switch listFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		case "yaml":
			return yaml.NewEncoder(out).Encode(rows)
		default:
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tID\tATTRIBUTES\tRELATIONSHIPS")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", r.Kind, r.ID, r.Attributes, r.Relationships)
			}
			return w.Flush()
		}

	case listTemplates:
		names := sequence.Names()
		switch listFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(names)
		case "yaml":
			return yaml.NewEncoder(out).Encode(names)
		default:
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}

	default:
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		names, err := store.ListModels()
		if err != nil {
			return err
		}
		switch listFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(names)
		case "yaml":
			return yaml.NewEncoder(out).Encode(names)
		default:
			if len(names) == 0 {
				fmt.Fprintln(out, "No models stored. Run 'modelgraph init <name>' to create one.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}
	}
}
