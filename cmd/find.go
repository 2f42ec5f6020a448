// =============================================================================
// Calscape Geophyte Finder - Find Command
// =============================================================================
//
// This file defines the 'find' command, which runs the full pipeline:
// parse both inputs, cross-reference them, print the summary, and write
// the geophyte CSV plus a run report.
//
// COMMAND USAGE:
//   geophytes find [flags]
//
// FLAGS:
//   --calscape           : Path to the Calscape XLSX export (overrides config)
//   --taxa               : Path to the iNaturalist taxa CSV (overrides config)
//   --criteria           : Path to a criteria YAML file (overrides config)
//   --output-dir         : Output directory (overrides config)
//   --exclude-cultivars  : Drop cultivar rows from the output CSV
//   --dry-run            : Run the pipeline without writing any files
//   --no-report          : Skip the run report
//
// PROCESSING PIPELINE:
//   1. Load configuration and criteria
//   2. Parse the Calscape XLSX export
//   3. Parse the iNaturalist taxa CSV
//   4. Run the matching engine and print the summary
//   5. Write the output CSV (skipped when nothing matched)
//   6. Write the run report
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/calflora/geophytes/internal/calscape"
	"github.com/calflora/geophytes/internal/config"
	"github.com/calflora/geophytes/internal/csvwriter"
	"github.com/calflora/geophytes/internal/geophyte"
	"github.com/calflora/geophytes/internal/inat"
	"github.com/calflora/geophytes/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// calscapePath is the path to the Calscape XLSX export.
var calscapePath string

// taxaPath is the path to the iNaturalist taxa CSV.
var taxaPath string

// criteriaPath is the path to a criteria YAML file.
var criteriaPath string

// outputDir is the output directory.
var outputDir string

// excludeCultivars drops cultivar rows from the output CSV.
var excludeCultivars bool

// dryRun simulates processing without writing output files.
var dryRun bool

// noReport skips the run report.
var noReport bool

// =============================================================================
// FIND COMMAND DEFINITION
// =============================================================================

// findCmd represents the 'find' command.
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Cross-reference the inputs and write the geophyte CSV",
	Long: `The find command parses the Calscape export and the taxonomy reference,
applies the geophyte criteria, prints a summary, and writes the matching
species to a CSV in the output directory.

The summary is always printed. The CSV is only written when at least one
plant matched; an empty search writes no file. Cultivars (botanical
names with a quoted epithet) are included by default and can be dropped
with --exclude-cultivars.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the find command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVar(
		&calscapePath,
		"calscape",
		"",
		"Path to the Calscape XLSX export (overrides config)",
	)

	findCmd.Flags().StringVar(
		&taxaPath,
		"taxa",
		"",
		"Path to the iNaturalist taxa CSV (overrides config)",
	)

	findCmd.Flags().StringVar(
		&criteriaPath,
		"criteria",
		"",
		"Path to a criteria YAML file (overrides config)",
	)

	findCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Output directory (overrides config)",
	)

	findCmd.Flags().BoolVar(
		&excludeCultivars,
		"exclude-cultivars",
		false,
		"Drop cultivar rows from the output CSV",
	)

	findCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing any files",
	)

	findCmd.Flags().BoolVar(
		&noReport,
		"no-report",
		false,
		"Skip the run report",
	)
}

// loadRunConfig loads the main configuration and applies flag overrides.
// Shared by the find and validate commands.
func loadRunConfig(cmd *cobra.Command) (*config.MainConfig, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if calscapePath != "" {
		cfg.CalscapePath = calscapePath
	}
	if taxaPath != "" {
		cfg.TaxaPath = taxaPath
	}
	if criteriaPath != "" {
		cfg.CriteriaFile = criteriaPath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("exclude-cultivars") {
		cfg.ExcludeCultivars = excludeCultivars
	}
	if cmd.Flags().Changed("no-report") {
		cfg.SkipReport = noReport
	}

	return cfg, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runFind is the main function that orchestrates the pipeline.
func runFind(cmd *cobra.Command) error {
	startTime := time.Now()
	runID := utils.NewRunID()
	logger := geophyte.NewLogger(verbose)

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION AND CRITERIA
	// =========================================================================

	fmt.Println("=== Calscape Geophyte Finder ===")

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	criteria, err := config.LoadCriteria(cfg.CriteriaFile)
	if err != nil {
		return fmt.Errorf("failed to load criteria: %w", err)
	}

	if cfg.CalscapePath == "" {
		return fmt.Errorf("no Calscape export given: set calscape_xlsx in the config or pass --calscape")
	}
	if cfg.TaxaPath == "" {
		return fmt.Errorf("no taxa CSV given: set inat_taxa_csv in the config or pass --taxa")
	}

	logger.Debug("criteria: %d families, %d genera", len(criteria.Families), len(criteria.Genera))

	// =========================================================================
	// STEP 2: PARSE CALSCAPE EXPORT
	// =========================================================================

	fmt.Printf("Reading Calscape export: %s\n", cfg.CalscapePath)

	plants, err := calscape.Parse(cfg.CalscapePath, cfg.Calscape)
	if err != nil {
		return fmt.Errorf("failed to parse Calscape export: %w", err)
	}

	logger.Debug("parsed %d plants in %d genera", plants.Len(), len(plants.Genera()))

	// =========================================================================
	// STEP 3: PARSE TAXONOMY REFERENCE
	// =========================================================================

	fmt.Printf("Reading taxonomy reference: %s\n", cfg.TaxaPath)

	taxonomy, err := inat.Parse(cfg.TaxaPath)
	if err != nil {
		return fmt.Errorf("failed to parse taxa CSV: %w", err)
	}

	logger.Debug("parsed %d plant genera from the taxonomy", taxonomy.GenusCount())

	// =========================================================================
	// STEP 4: RUN THE MATCHING ENGINE
	// =========================================================================

	finder := geophyte.New(plants, taxonomy, criteria)
	finder.SetLogger(logger)
	result := finder.Run()

	fmt.Println()
	fmt.Println(result.Stats.Summary())

	// =========================================================================
	// STEP 5: WRITE OUTPUT CSV
	// =========================================================================

	if dryRun {
		fmt.Println("\nDry run: no files written.")
		return nil
	}

	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}

	outputName := utils.GenerateOutputFileName(cfg.OutputNameFormat, runID, startTime)
	outputPath := filepath.Join(cfg.OutputDir, outputName)

	opts := csvwriter.GenerateOptions{ExcludeCultivars: cfg.ExcludeCultivars}
	rows, err := csvwriter.Write(outputPath, result.Records, opts)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if rows == 0 {
		outputPath = ""
		fmt.Println("\nNo geophytes matched; no output file written.")
	} else {
		fmt.Printf("\n  ✓ %d rows -> %s\n", rows, outputPath)
	}

	// =========================================================================
	// STEP 6: WRITE RUN REPORT
	// =========================================================================

	if !cfg.SkipReport {
		report := utils.RunReport{
			RunID:         runID,
			StartTime:     startTime,
			EndTime:       time.Now(),
			CalscapePath:  cfg.CalscapePath,
			TaxaPath:      cfg.TaxaPath,
			OutputFile:    outputPath,
			PlantsScanned: result.Stats.PlantsScanned,
			Geophytes:     result.Stats.Geophytes,
			SpeciesOnly:   result.Stats.SpeciesOnly,
			Genera:        result.Stats.Genera,
			Families:      result.Stats.Families,
			RowsWritten:   rows,
		}
		for _, genus := range result.Stats.UnknownFamilyGenera {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("genus %s not found in the taxonomy reference", genus))
		}

		reportPath, err := utils.WriteRunReport(report, cfg.OutputDir)
		if err != nil {
			// A failed report should not fail a successful run.
			logger.Warn("failed to write run report: %v", err)
		} else {
			logger.Debug("run report: %s", reportPath)
		}
	}

	fmt.Printf("Time elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}
