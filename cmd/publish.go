package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insfabric/modelgraph/internal/config"
	"github.com/insfabric/modelgraph/internal/imaging"
	"github.com/insfabric/modelgraph/internal/publish"
	"github.com/insfabric/modelgraph/internal/renderer"
	"github.com/insfabric/modelgraph/internal/types"
	"github.com/insfabric/modelgraph/internal/workflow"
)

var (
	publishForce   bool
	publishFormat  string
	publishWithImg bool
)

var publishCmd = &cobra.Command{
	Use:   "publish <model>...",
	Short: "Validate, render, store and publish models",
	Long: `Run the full pipeline for one or more models: validate, render both
grammars (or one with --format), store the diagram sources, and push them to
the configured documentation service.

Requires publish.base_url in the configuration. With --image the rendered
source is additionally sent to the configured image-rendering service as a
smoke test.

Examples:
  modelgraph publish acme
  modelgraph publish acme beta --force
  modelgraph publish acme --format plantuml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().BoolVar(&publishForce, "force", false, "re-render diagrams that already exist")
	publishCmd.Flags().StringVar(&publishFormat, "format", "", "publish a single grammar (mermaid, plantuml)")
	publishCmd.Flags().BoolVar(&publishWithImg, "image", false, "also render an image through the imaging service")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Publish.BaseURL == "" {
		return fmt.Errorf("publish.base_url is not configured")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	o := &workflow.Orchestrator{
		Renderer:    renderer.New(),
		Store:       store,
		Publisher:   publish.NewWikiPublisher(cfg.Publish.BaseURL, cfg.Publish.SpaceKey, cfg.Publish.Token),
		Log:         newLogger(),
		Force:       publishForce,
		ImageWidth:  cfg.Imaging.Width,
		ImageHeight: cfg.Imaging.Height,
	}
	if publishWithImg {
		o.Imager = imaging.NewKrokiClient(cfg.Imaging.Endpoint)
	}
	if publishFormat != "" {
		format, err := types.ParseDiagramFormat(publishFormat)
		if err != nil {
			return err
		}
		o.Formats = []types.DiagramFormat{format}
	}

	models := make([]types.DomainModel, 0, len(args))
	for _, arg := range args {
		m, err := resolveModel(cfg, arg)
		if err != nil {
			return err
		}
		models = append(models, m)
	}

	results := o.RunAll(cmd.Context(), models, 4)

	out := cmd.OutOrStdout()
	failed := false
	for _, res := range results {
		if res.Err != nil {
			failed = true
			fmt.Fprintf(out, "✗ %s: %v\n", res.Model, res.Err)
			continue
		}
		for format, pageID := range res.PageIDs {
			fmt.Fprintf(out, "✓ %s (%s) -> page %s\n", res.Model, format, pageID)
		}
		for _, format := range res.Skipped {
			fmt.Fprintf(out, "- %s (%s) up to date\n", res.Model, format)
		}
	}
	if failed {
		return fmt.Errorf("publish failed")
	}
	return nil
}
