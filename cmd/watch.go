package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/insfabric/modelgraph/internal/config"
	"github.com/insfabric/modelgraph/internal/renderer"
	"github.com/insfabric/modelgraph/internal/storage"
	"github.com/insfabric/modelgraph/internal/types"
	"github.com/insfabric/modelgraph/internal/validation"
	"github.com/insfabric/modelgraph/internal/watcher"
)

var watchFlags RenderFlags

var watchCmd = &cobra.Command{
	Use:     "watch <model>",
	Aliases: []string{"w"},
	Short:   "Re-render a model whenever its file changes",
	Long: `Watch a model file and re-render its diagram source into the storage
directory on every change. Runs until interrupted.

Examples:
  modelgraph watch acme
  modelgraph watch models/acme.yaml -f plantuml`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	AddRenderFlags(watchCmd, &watchFlags, types.DefaultRenderOptions(types.FormatMermaid))
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	watchFlags.ApplyConfigDefaults(cmd, renderConfigDefaults(cfg))
	opts, err := watchFlags.Options()
	if err != nil {
		return err
	}

	path, err := modelFilePath(cfg, args[0])
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	log := newLogger().WithComponent("watch")
	r := renderer.New()
	ctx := cmd.Context()

	rerender := func() {
		m, err := storage.LoadModelFile(path)
		if err != nil {
			log.Error(ctx, err, "loading model", "path", path)
			return
		}
		if err := validation.ValidateModel(&m); err != nil {
			log.Error(ctx, err, "model invalid", "path", path)
			return
		}
		text, err := r.Render(m, opts)
		if err != nil {
			log.Error(ctx, err, "rendering model")
			return
		}
		outPath, err := store.SaveDiagram(m.Name, text, opts.Format)
		if err != nil {
			log.Error(ctx, err, "saving diagram")
			return
		}
		log.Info(ctx, "diagram regenerated", "path", outPath)
	}

	w, err := watcher.New(time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(events []watcher.ChangeEvent) {
		log.Debug(ctx, "change batch", "events", len(events))
		rerender()
	})
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	rerender()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", path)

	watchCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	w.Start(watchCtx)

	<-watchCtx.Done()
	return nil
}
