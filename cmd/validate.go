package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insfabric/modelgraph/internal/config"
	mgerrors "github.com/insfabric/modelgraph/internal/errors"
	"github.com/insfabric/modelgraph/internal/validation"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:     "validate <model>...",
	Aliases: []string{"v"},
	Short:   "Validate domain models against their structural invariants",
	Long: `Validate one or more domain models. Each argument is either a stored
model name or a path to a model YAML file.

All violations are collected and reported in one pass:

- missing entity ids, names or kinds
- kinds outside the seven-value taxonomy
- attributes without a name or type
- relationships without a valid kind, target or cardinality
- duplicate entity ids
- relationship targets that resolve to no entity

Examples:
  modelgraph validate acme
  modelgraph validate models/acme.yaml models/beta.yaml
  modelgraph validate acme --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format (text, json)")
}

type validationReport struct {
	Model      string   `json:"model"`
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reports := make([]validationReport, 0, len(args))
	failed := false

	for _, arg := range args {
		report := validationReport{Model: arg, Valid: true}

		m, err := resolveModel(cfg, arg)
		if err != nil {
			report.Valid = false
			report.Error = err.Error()
			failed = true
			reports = append(reports, report)
			continue
		}

		if err := validation.ValidateModel(&m); err != nil {
			report.Valid = false
			failed = true
			var me *mgerrors.ModelError
			if errors.As(err, &me) {
				for _, v := range me.Violations {
					report.Violations = append(report.Violations, v.Error())
				}
			} else {
				report.Error = err.Error()
			}
		}
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if validateFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if r.Valid {
				fmt.Fprintf(out, "✓ %s\n", r.Model)
				continue
			}
			fmt.Fprintf(out, "✗ %s\n", r.Model)
			if r.Error != "" {
				fmt.Fprintf(out, "    %s\n", r.Error)
			}
			for _, v := range r.Violations {
				fmt.Fprintf(out, "    %s\n", v)
			}
		}
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}
