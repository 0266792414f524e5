// Package cmd provides the command-line interface for modelgraph.
//
// Configuration is resolved from three sources with clear precedence:
//
//  1. command-line flags, highest priority
//  2. MODELGRAPH_<SECTION>_<OPTION> environment variables
//  3. the .modelgraph.yml configuration file
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/insfabric/modelgraph/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "modelgraph",
	Short: "Validate insurance domain models and generate diagrams",
	Long: `modelgraph validates structured insurance domain models and renders them
deterministically as Mermaid or PlantUML diagram source.

Key features:
  • Built-in entity catalog for the seven insurance entity kinds
  • Structural model validation with consolidated error reports
  • Dual-grammar class-diagram generation that never drifts semantically
  • Sequence diagrams for built-in process templates
  • Live preview server with reload on model changes

Quick start:
  modelgraph init acme            Bootstrap a starter model from the catalog
  modelgraph validate acme        Validate a stored model
  modelgraph render acme          Render a model as diagram source
  modelgraph serve acme           Preview a model with live reload`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .modelgraph.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

// initConfig reads the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".modelgraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("MODELGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// newLogger builds the logger the subcommands share.
func newLogger() logging.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return logging.NewLogger(logging.Config{
		Level:  level,
		Format: logFormat,
		Output: os.Stderr,
	})
}
