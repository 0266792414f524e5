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
	"github.com/insfabric/modelgraph/internal/server"
	"github.com/insfabric/modelgraph/internal/types"
	"github.com/insfabric/modelgraph/internal/watcher"
)

var (
	serveHost   string
	servePort   int
	serveFormat string
)

var serveCmd = &cobra.Command{
	Use:     "serve <model>",
	Aliases: []string{"s"},
	Short:   "Preview a model in the browser with live reload",
	Long: `Start a local preview server for a model file. The page shows the
rendered diagram source and reloads automatically when the model changes.

Examples:
  modelgraph serve acme
  modelgraph serve models/acme.yaml -p 9000 -f plantuml`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to serve on (default from config)")
	serveCmd.Flags().StringVarP(&serveFormat, "format", "f", "", "diagram grammar (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	formatName := cfg.Render.Format
	if serveFormat != "" {
		formatName = serveFormat
	}
	format, err := types.ParseDiagramFormat(formatName)
	if err != nil {
		return err
	}

	path, err := modelFilePath(cfg, args[0])
	if err != nil {
		return err
	}

	log := newLogger()
	srv := server.New(fmt.Sprintf("%s:%d", host, port), path, format, renderer.New(), log)

	w, err := watcher.New(time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Stop()
	w.OnChange(func([]watcher.ChangeEvent) { srv.NotifyReload() })
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	w.Start(ctx)

	fmt.Fprintf(cmd.OutOrStdout(), "Previewing %s at http://%s:%d (Ctrl+C to stop)\n", path, host, port)
	return srv.Start(ctx)
}
