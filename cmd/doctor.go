package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/insfabric/modelgraph/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and print the effective settings",
	Long: `Validate the resolved configuration, report the config file in use, and
print the effective settings as YAML.

Examples:
  modelgraph doctor`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Fprintf(out, "Config file: %s\n", file)
	} else {
		fmt.Fprintln(out, "Config file: none (using defaults)")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	fmt.Fprintln(out, "Configuration: ok")

	if info, err := os.Stat(cfg.Storage.Dir); err != nil {
		fmt.Fprintf(out, "Storage dir: %s (will be created on first use)\n", cfg.Storage.Dir)
	} else if !info.IsDir() {
		fmt.Fprintf(out, "Storage dir: %s is not a directory!\n", cfg.Storage.Dir)
	} else {
		fmt.Fprintf(out, "Storage dir: %s\n", cfg.Storage.Dir)
	}

	fmt.Fprintln(out, "\nEffective settings:")
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
