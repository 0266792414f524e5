package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insfabric/modelgraph/internal/sequence"
	"github.com/insfabric/modelgraph/internal/types"
)

var (
	sequenceFormat string
	sequenceOutput string
)

var sequenceCmd = &cobra.Command{
	Use:     "sequence <process>",
	Aliases: []string{"seq"},
	Short:   "Render a built-in process template as a sequence diagram",
	Long: `Expand one of the built-in process templates into sequence-diagram source.

Available processes:
  policy-creation, claim-processing, premium-calculation

Examples:
  modelgraph sequence policy-creation
  modelgraph sequence claim-processing -f plantuml -o claims.puml`,
	Args: cobra.ExactArgs(1),
	RunE: runSequence,
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
	sequenceCmd.Flags().StringVarP(&sequenceFormat, "format", "f", "mermaid", "diagram grammar (mermaid, plantuml)")
	sequenceCmd.Flags().StringVarP(&sequenceOutput, "output", "o", "", "write diagram source to this file")
}

func runSequence(cmd *cobra.Command, args []string) error {
	format, err := types.ParseDiagramFormat(sequenceFormat)
	if err != nil {
		return err
	}

	text, err := sequence.Render(args[0], format)
	if err != nil {
		return err
	}

	if sequenceOutput != "" {
		if err := os.WriteFile(sequenceOutput, []byte(text), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", sequenceOutput)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
