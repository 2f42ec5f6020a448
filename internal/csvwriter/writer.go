// =============================================================================
// Calscape Geophyte Finder - CSV Writer Module
// =============================================================================
//
// This module is responsible for generating the output CSV from the
// matched geophyte records.
//
// OUTPUT STRUCTURE:
//   family,genus,species,common_name,url
//   Iridaceae,Iris,Iris douglasiana,Douglas Iris,https://calscape.org/...
//   Liliaceae,Calochortus,Calochortus albus,Fairy Lantern,https://...
//
// Rows arrive pre-sorted from the finder; this module only renders and
// optionally drops cultivars. An empty record set produces no file: an
// empty CSV looks like a successful search with no results, which is
// misleading next to a failed or misconfigured run.
//
// =============================================================================

package csvwriter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/calflora/geophytes/internal/types"
)

// Header is the output CSV header row.
var Header = []string{"family", "genus", "species", "common_name", "url"}

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for CSV generation.
type GenerateOptions struct {
	// ExcludeCultivars drops records whose species name contains a
	// cultivar epithet.
	ExcludeCultivars bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		ExcludeCultivars: false,
	}
}

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// Generate renders the records as CSV bytes.
//
// PARAMETERS:
//   - records: The matched geophyte records, already sorted.
//   - opts: The generation options.
//
// RETURNS:
//   - The CSV document, or nil when no records remain after filtering.
//   - The number of rows written (excluding the header).
//   - An error if rendering fails.
func Generate(records []types.GeophyteRecord, opts GenerateOptions) ([]byte, int, error) {
	rows := 0
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, 0, fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		if opts.ExcludeCultivars && types.IsCultivarName(record.Species) {
			continue
		}

		row := []string{
			record.Family,
			record.Genus,
			record.Species,
			record.CommonName,
			record.URL,
		}
		if err := w.Write(row); err != nil {
			return nil, 0, fmt.Errorf("failed to write row for %s: %w", record.Species, err)
		}
		rows++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, fmt.Errorf("failed to flush CSV: %w", err)
	}

	if rows == 0 {
		return nil, 0, nil
	}

	return buf.Bytes(), rows, nil
}

// Write generates the CSV and writes it to the given path.
//
// PARAMETERS:
//   - path: The output file path.
//   - records: The matched geophyte records.
//   - opts: The generation options.
//
// RETURNS:
//   - The number of rows written. Zero means no file was created.
//   - An error if generation or writing fails.
func Write(path string, records []types.GeophyteRecord, opts GenerateOptions) (int, error) {
	data, rows, err := Generate(records, opts)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}

	return rows, nil
}
