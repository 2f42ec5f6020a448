// =============================================================================
// Calscape Geophyte Finder - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the
// configuration, criteria, and both input files without writing any
// output. Useful after downloading fresh exports: a format change shows
// up here as a clear error instead of a half-written run.
//
// COMMAND USAGE:
//   geophytes validate [flags]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calflora/geophytes/internal/config"
	"github.com/calflora/geophytes/internal/validation"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and input files without processing",
	Long: `The validate command loads the configuration and criteria, opens both
input files, and checks their headers and contents. Nothing is written.

Problems are reported as errors (the run cannot proceed) or warnings
(the run can proceed but probably won't do what you want, e.g. a
criteria family with no genera in the taxonomy).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

// init registers the validate command with the root command.
// The input-path flags are shared with 'find' via loadRunConfig.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&calscapePath, "calscape", "", "Path to the Calscape XLSX export (overrides config)")
	validateCmd.Flags().StringVar(&taxaPath, "taxa", "", "Path to the iNaturalist taxa CSV (overrides config)")
	validateCmd.Flags().StringVar(&criteriaPath, "criteria", "", "Path to a criteria YAML file (overrides config)")
}

// =============================================================================
// VALIDATION FUNCTION
// =============================================================================

// runValidate loads everything and prints the collected problems.
func runValidate(cmd *cobra.Command) error {
	fmt.Println("=== Calscape Geophyte Finder - Validation ===")

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	criteria, err := config.LoadCriteria(cfg.CriteriaFile)
	if err != nil {
		return fmt.Errorf("failed to load criteria: %w", err)
	}

	result := validation.ValidateRun(cfg, criteria)

	for _, problem := range result.Problems {
		fmt.Printf("  %s\n", problem.Error())
	}

	fmt.Printf("\n%d error(s), %d warning(s)\n", result.ErrorCount, result.WarningCount)

	if !result.IsValid() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount)
	}

	fmt.Println("Configuration and inputs look good.")
	return nil
}
