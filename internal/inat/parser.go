// =============================================================================
// Calscape Geophyte Finder - iNaturalist Taxonomy Parser
// =============================================================================
//
// This module is responsible for parsing the iNaturalist taxa CSV (the
// taxonomy reference file). The file is a standard single-header CSV in
// Darwin Core style; the columns this tool needs are:
//   - kingdom        : filter to "Plantae"
//   - taxonRank      : filter to "genus"
//   - family         : the genus' family
//   - scientificName : for genus-rank rows, the genus name itself
//
// Only plant genus rows are kept; everything else in the file (species,
// subspecies, other kingdoms) is irrelevant to the family-to-genus join.
//
// =============================================================================

package inat

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column headers required in the taxa CSV.
const (
	headerKingdom        = "kingdom"
	headerTaxonRank      = "taxonRank"
	headerFamily         = "family"
	headerScientificName = "scientificName"
)

// Filter values for the rows this tool keeps.
const (
	kingdomPlantae = "Plantae"
	rankGenus      = "genus"
)

// =============================================================================
// TAXONOMY STRUCTURE
// =============================================================================

// Taxonomy holds the family/genus relationships extracted from the taxa
// CSV.
type Taxonomy struct {
	// SourceFile is the path to the source CSV file.
	SourceFile string

	familyToGenera map[string][]string
	genusToFamily  map[string]string
}

// NewTaxonomy builds a taxonomy from explicit family/genus pairs. Parse
// is the usual entry point; this exists for callers (and tests) that
// already hold the relationships.
func NewTaxonomy(genusToFamily map[string]string) *Taxonomy {
	taxonomy := &Taxonomy{
		familyToGenera: make(map[string][]string),
		genusToFamily:  make(map[string]string),
	}
	for genus, family := range genusToFamily {
		taxonomy.add(family, genus)
	}
	return taxonomy
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads an iNaturalist taxa CSV and returns the plant genus
// taxonomy.
//
// PARAMETERS:
//   - filePath: The path to the taxa CSV.
//
// RETURNS:
//   - A pointer to the Taxonomy struct.
//   - An error if the file cannot be read or required headers are missing.
func Parse(filePath string) (*Taxonomy, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open taxa file: %w", err)
	}
	defer file.Close()

	taxonomy, err := parse(bufio.NewReader(file))
	if err != nil {
		return nil, err
	}
	taxonomy.SourceFile = filePath
	return taxonomy, nil
}

// parse reads the taxa CSV from a reader. Split out from Parse so tests
// can feed it in-memory data.
func parse(r io.Reader) (*Taxonomy, error) {
	reader := csv.NewReader(r)
	// The taxa export quotes inconsistently and pads some fields.
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Read the header row and locate the required columns.
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("taxa file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read taxa header: %w", err)
	}

	columns, err := locateColumns(headers)
	if err != nil {
		return nil, err
	}

	taxonomy := &Taxonomy{
		familyToGenera: make(map[string][]string),
		genusToFamily:  make(map[string]string),
	}

	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read taxa row %d: %w", rowNum+1, err)
		}
		rowNum++

		get := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		if get(columns[headerKingdom]) != kingdomPlantae {
			continue
		}
		if get(columns[headerTaxonRank]) != rankGenus {
			continue
		}

		genus := get(columns[headerScientificName])
		family := get(columns[headerFamily])
		if genus == "" || family == "" {
			continue
		}

		taxonomy.add(family, genus)
	}

	return taxonomy, nil
}

// locateColumns maps each required header to its column index.
func locateColumns(headers []string) (map[string]int, error) {
	required := []string{headerKingdom, headerTaxonRank, headerFamily, headerScientificName}
	columns := make(map[string]int, len(required))

	for i, h := range headers {
		columns[strings.TrimSpace(h)] = i
	}

	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("taxa file is missing required column %q", name)
		}
	}

	return columns, nil
}

// add records a family/genus pair. A genus listed twice keeps its first
// family.
func (t *Taxonomy) add(family, genus string) {
	if _, seen := t.genusToFamily[genus]; seen {
		return
	}
	t.genusToFamily[genus] = family
	t.familyToGenera[family] = append(t.familyToGenera[family], genus)
}

// =============================================================================
// LOOKUP METHODS
// =============================================================================

// GeneraForFamily returns the genera recorded for a family. The result
// is nil for an unknown family.
func (t *Taxonomy) GeneraForFamily(family string) []string {
	return t.familyToGenera[family]
}

// FamilyForGenus returns the family of a genus. ok is false when the
// genus is not in the taxonomy.
func (t *Taxonomy) FamilyForGenus(genus string) (string, bool) {
	family, ok := t.genusToFamily[genus]
	return family, ok
}

// GenusCount returns the number of plant genera in the taxonomy.
func (t *Taxonomy) GenusCount() int {
	return len(t.genusToFamily)
}
