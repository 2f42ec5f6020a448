// =============================================================================
// Calscape Geophyte Finder - Calscape Export Parser
// =============================================================================
//
// This module is responsible for parsing the XLSX export produced by a
// Calscape plant search. The export has a fixed layout:
//   - Rows 1-5: preamble (search description, date, logo spacing)
//   - Row 6:    column headers ("Botanical Name", "Common Name", ...,
//               "Plant Url" in column AW)
//   - Row 7+:   one plant per row
//
// COLUMN LOCATION:
//   Columns are located by header text within the header row, so the
//   parser survives Calscape inserting or reordering columns. If a header
//   is missing, that is an error: a renamed header means the export
//   format changed and silent misreads are worse than a failed run.
//
// =============================================================================

package calscape

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/calflora/geophytes/internal/config"
	"github.com/calflora/geophytes/internal/types"
)

// =============================================================================
// PLANT LIST STRUCTURE
// =============================================================================

// PlantList holds the parsed Calscape export, indexed for the lookups the
// finder needs.
type PlantList struct {
	// Plants contains every plant row in file order.
	Plants []types.Plant

	// SourceFile is the path to the source XLSX file.
	SourceFile string

	genusToSpecies map[string][]string
	byName         map[string]types.Plant
}

// NewPlantList builds an indexed plant list from already-parsed plants.
// Parse is the usual entry point; this exists for callers (and tests)
// that already hold Plant values.
func NewPlantList(plants ...types.Plant) *PlantList {
	list := &PlantList{
		genusToSpecies: make(map[string][]string),
		byName:         make(map[string]types.Plant),
	}
	for _, plant := range plants {
		if plant.BotanicalName == "" {
			continue
		}
		list.add(plant)
	}
	return list
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a Calscape XLSX export and returns the indexed plant list.
//
// PARAMETERS:
//   - filePath: The path to the XLSX export.
//   - settings: The Calscape parsing settings from the configuration.
//
// RETURNS:
//   - A pointer to the PlantList containing the parsed plants.
//   - An error if the file cannot be read or the headers do not match.
func Parse(filePath string, settings config.CalscapeSettings) (*PlantList, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open calscape export: %w", err)
	}
	defer f.Close()

	// Resolve the worksheet.
	sheetName := settings.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("calscape export has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if len(rows) < settings.HeaderRow {
		return nil, fmt.Errorf("calscape export has %d rows, header expected on row %d", len(rows), settings.HeaderRow)
	}

	// Locate the columns by header text.
	headerRow := rows[settings.HeaderRow-1]
	nameCol, err := findColumn(headerRow, settings.BotanicalNameHeader, settings.HeaderRow)
	if err != nil {
		return nil, err
	}
	commonCol, err := findColumn(headerRow, settings.CommonNameHeader, settings.HeaderRow)
	if err != nil {
		return nil, err
	}
	urlCol, err := findColumn(headerRow, settings.URLHeader, settings.HeaderRow)
	if err != nil {
		return nil, err
	}

	// Parse the data rows.
	list := &PlantList{
		SourceFile:     filePath,
		genusToSpecies: make(map[string][]string),
		byName:         make(map[string]types.Plant),
	}

	for i := settings.HeaderRow; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		plant := types.Plant{
			BotanicalName: cell(row, nameCol),
			CommonName:    cell(row, commonCol),
			URL:           cell(row, urlCol),
			Row:           i + 1,
		}

		// Rows without a botanical name carry nothing to match on.
		if plant.BotanicalName == "" {
			continue
		}

		list.add(plant)
	}

	return list, nil
}

// findColumn returns the 0-based index of the column with the given
// header, matched case-insensitively.
func findColumn(headerRow []string, header string, headerRowNum int) (int, error) {
	for i, h := range headerRow {
		if strings.EqualFold(strings.TrimSpace(h), header) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("header %q not found on row %d; the export format may have changed", header, headerRowNum)
}

// cell returns the trimmed value at the given column, or "" when the row
// is shorter than the column index (excelize drops trailing empty cells).
func cell(row []string, col int) string {
	if col < len(row) {
		return strings.TrimSpace(row[col])
	}
	return ""
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// add indexes a plant. A botanical name appearing twice keeps the last
// occurrence, matching how the export is de-duplicated upstream.
func (l *PlantList) add(plant types.Plant) {
	genus := plant.Genus()

	if _, seen := l.byName[plant.BotanicalName]; !seen {
		l.genusToSpecies[genus] = append(l.genusToSpecies[genus], plant.BotanicalName)
		l.Plants = append(l.Plants, plant)
	}
	l.byName[plant.BotanicalName] = plant
}

// =============================================================================
// LOOKUP METHODS
// =============================================================================

// Genera returns the set of genera present in the export.
func (l *PlantList) Genera() map[string]bool {
	genera := make(map[string]bool, len(l.genusToSpecies))
	for genus := range l.genusToSpecies {
		genera[genus] = true
	}
	return genera
}

// SpeciesForGenus returns the botanical names of every plant in the
// given genus, including cultivars. The result is nil for a genus not in
// the export.
func (l *PlantList) SpeciesForGenus(genus string) []string {
	return l.genusToSpecies[genus]
}

// Lookup returns the plant with the given botanical name.
func (l *PlantList) Lookup(botanicalName string) (types.Plant, bool) {
	plant, ok := l.byName[botanicalName]
	return plant, ok
}

// Len returns the number of distinct plants in the export.
func (l *PlantList) Len() int {
	return len(l.Plants)
}
