// =============================================================================
// Calscape Geophyte Finder - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the finder:
//   - Output directory management
//   - Output file naming
//   - Run report generation
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// GenerateOutputFileName generates the output file name from a format
// string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {name}      - The base name "geophytes"
//               {date}      - Current date (YYYYMMDD)
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {runid}     - The run's UUID
//   - runID: The UUID of this run.
//   - now: The time used for date placeholders.
//
// RETURNS:
//   - The generated file name, always with a .csv extension.
//
// EXAMPLE:
//   format: "{name}_{date}.csv"
//   output: "geophytes_20260823.csv"
func GenerateOutputFileName(format, runID string, now time.Time) string {
	replacements := map[string]string{
		"{name}":      "geophytes",
		"{date}":      now.Format("20060102"),
		"{timestamp}": now.Format("20060102_150405"),
		"{runid}":     runID,
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".csv") {
		result += ".csv"
	}

	return result
}

// =============================================================================
// RUN REPORT
// =============================================================================

// RunReport contains summary information about a finder run.
type RunReport struct {
	RunID         string
	StartTime     time.Time
	EndTime       time.Time
	CalscapePath  string
	TaxaPath      string
	OutputFile    string
	PlantsScanned int
	Geophytes     int
	SpeciesOnly   int
	Genera        int
	Families      int
	RowsWritten   int
	Warnings      []string
}

// WriteRunReport writes the run report to a log file in the output
// directory.
//
// PARAMETERS:
//   - report: The run report.
//   - outputDir: The directory to write the report file.
//
// RETURNS:
//   - The path to the report file.
//   - An error if writing fails.
func WriteRunReport(report RunReport, outputDir string) (string, error) {
	reportName := fmt.Sprintf("run_report_%s.txt", report.StartTime.Format("20060102_150405"))
	reportPath := filepath.Join(outputDir, reportName)

	file, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("failed to create run report: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := report.EndTime.Sub(report.StartTime)
	header := fmt.Sprintf("Calscape Geophyte Finder - Run Report\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:     %s\n"+
		"  Start Time: %s\n"+
		"  End Time:   %s\n"+
		"  Duration:   %s\n\n"+
		"Inputs:\n"+
		"  Calscape Export: %s\n"+
		"  Taxa Reference:  %s\n\n"+
		"Results:\n"+
		"  Plants Scanned:       %d\n"+
		"  Geophytes Found:      %d\n"+
		"  Excluding Cultivars:  %d\n"+
		"  Genera:               %d\n"+
		"  Families:             %d\n"+
		"  Rows Written:         %d\n",
		report.RunID,
		report.StartTime.Format("2006-01-02 15:04:05"),
		report.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		report.CalscapePath,
		report.TaxaPath,
		report.PlantsScanned,
		report.Geophytes,
		report.SpeciesOnly,
		report.Genera,
		report.Families,
		report.RowsWritten)
	writer.WriteString(header)

	if report.OutputFile != "" {
		writer.WriteString(fmt.Sprintf("  Output File:          %s\n", report.OutputFile))
	} else {
		writer.WriteString("  Output File:          (none - no matching rows)\n")
	}

	if len(report.Warnings) > 0 {
		writer.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			writer.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}

	footer := "\n================================================================================\n" +
		"End of Report\n"
	writer.WriteString(footer)

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush run report: %w", err)
	}

	return reportPath, nil
}
