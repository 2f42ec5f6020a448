// =============================================================================
// Calscape Geophyte Finder - Matching Engine
// =============================================================================
//
// This module contains the core matching logic: deciding which plants of
// the Calscape export qualify as geophytes, and organizing the matches
// into a family -> genus -> species tree for output.
//
// MATCHING RULES:
//   A plant qualifies when either:
//   - its genus belongs to one of the criteria families, per the
//     taxonomy reference (e.g. everything in Liliaceae), or
//   - its genus appears directly in the criteria genus list (e.g. the
//     Brodiaeoideae genera, which share a family with non-geophytes).
//
//   Cultivars carry the genus of their parent species (the first token
//   of the botanical name), so they qualify with it automatically.
//
// =============================================================================

package geophyte

import (
	"fmt"
	"sort"

	"github.com/calflora/geophytes/internal/calscape"
	"github.com/calflora/geophytes/internal/config"
	"github.com/calflora/geophytes/internal/inat"
	"github.com/calflora/geophytes/internal/types"
)

// UnknownFamily is the family bucket for matched genera absent from the
// taxonomy reference.
const UnknownFamily = "(unknown)"

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a finder run.
type Result struct {
	// Records contains the matched plants, sorted by family, then
	// genus, then species. Cultivars are included; the output writer
	// decides whether to drop them.
	Records []types.GeophyteRecord

	// Stats contains match statistics.
	Stats Stats
}

// Stats contains statistics about a finder run.
type Stats struct {
	// PlantsScanned is the number of plants in the Calscape export.
	PlantsScanned int

	// Geophytes is the number of matched plants, cultivars included.
	Geophytes int

	// SpeciesOnly is the number of matched plants excluding cultivars.
	SpeciesOnly int

	// Genera is the number of distinct genera among the matches.
	Genera int

	// Families is the number of distinct families among the matches.
	Families int

	// UnknownFamilyGenera lists matched genera that the taxonomy
	// reference does not know. These end up under UnknownFamily.
	UnknownFamilyGenera []string
}

// Summary returns the human-readable summary printed after a run.
func (s Stats) Summary() string {
	return fmt.Sprintf(
		"Found %d geophytes, %d excluding cultivars\n%d genera across %d families",
		s.Geophytes, s.SpeciesOnly, s.Genera, s.Families,
	)
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is an interface for logging within the finder.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// defaultLogger is a simple logger that prints to stdout.
type defaultLogger struct {
	// Verbose enables Debug output.
	Verbose bool
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// NewLogger returns the default stdout logger.
func NewLogger(verbose bool) Logger {
	return &defaultLogger{Verbose: verbose}
}

// =============================================================================
// FINDER STRUCTURE
// =============================================================================

// Finder cross-references a Calscape export against the taxonomy
// reference using a set of geophyte criteria.
type Finder struct {
	// plants is the parsed Calscape export.
	plants *calscape.PlantList

	// taxonomy is the parsed iNaturalist taxa reference.
	taxonomy *inat.Taxonomy

	// criteria defines which families and genera count as geophytes.
	criteria config.Criteria

	// logger is used for progress and warning output.
	logger Logger
}

// New creates a new Finder instance.
//
// PARAMETERS:
//   - plants: The parsed Calscape export.
//   - taxonomy: The parsed taxa reference.
//   - criteria: The geophyte criteria to apply.
//
// RETURNS:
//   - A new Finder instance with the default logger.
func New(plants *calscape.PlantList, taxonomy *inat.Taxonomy, criteria config.Criteria) *Finder {
	return &Finder{
		plants:   plants,
		taxonomy: taxonomy,
		criteria: criteria,
		logger:   &defaultLogger{},
	}
}

// SetLogger replaces the finder's logger.
func (f *Finder) SetLogger(logger Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// =============================================================================
// MAIN MATCHING FUNCTION
// =============================================================================

// Run executes the matching pipeline.
//
// RETURNS:
//   - A Result containing the sorted records and statistics.
//
// MATCHING STEPS:
//   1. Collect species via the criteria families (taxonomy join)
//   2. Collect species via the criteria genus list
//   3. Group matches into a family -> genus -> species tree
//   4. Flatten the tree into sorted output records
func (f *Finder) Run() Result {
	matched := make(map[string]bool)

	// =========================================================================
	// STEP 1: FAMILY CRITERIA
	// =========================================================================
	// Intersect the export's genera with each criteria family's genera.

	calscapeGenera := f.plants.Genera()

	for _, family := range f.criteria.Families {
		genera := f.taxonomy.GeneraForFamily(family)
		if len(genera) == 0 {
			f.logger.Warn("family %s has no genera in the taxonomy reference", family)
			continue
		}

		count := 0
		for _, genus := range genera {
			if !calscapeGenera[genus] {
				continue
			}
			count += f.addGenus(matched, genus)
		}
		f.logger.Debug("family %s matched %d plants", family, count)
	}

	// =========================================================================
	// STEP 2: GENUS CRITERIA
	// =========================================================================
	// Genus entries match directly; a genus absent from the export is a
	// no-op (most Brodiaeoideae genera are not Californian).

	for _, genus := range f.criteria.Genera {
		count := f.addGenus(matched, genus)
		if count > 0 {
			f.logger.Debug("genus %s matched %d plants", genus, count)
		}
	}

	// =========================================================================
	// STEP 3: GROUP INTO FAMILY TREE
	// =========================================================================
	// Every matched species lands under its genus' family. Genera missing
	// from the taxonomy land under UnknownFamily instead of failing the
	// run: the match itself is still valid, only its family is unknown.

	tree := make(map[string]map[string][]string)
	unknownGenera := make(map[string]bool)

	for species := range matched {
		genus := types.GenusOf(species)
		family, ok := f.taxonomy.FamilyForGenus(genus)
		if !ok {
			family = UnknownFamily
			if !unknownGenera[genus] {
				unknownGenera[genus] = true
				f.logger.Warn("genus %s not found in the taxonomy reference; filing under %s", genus, UnknownFamily)
			}
		}

		if tree[family] == nil {
			tree[family] = make(map[string][]string)
		}
		tree[family][genus] = append(tree[family][genus], species)
	}

	// =========================================================================
	// STEP 4: FLATTEN TO SORTED RECORDS
	// =========================================================================

	result := Result{
		Records: f.flatten(tree),
	}
	result.Stats = f.stats(tree, unknownGenera)

	return result
}

// addGenus marks every plant of a genus as matched and returns how many
// were newly added.
func (f *Finder) addGenus(matched map[string]bool, genus string) int {
	added := 0
	for _, species := range f.plants.SpeciesForGenus(genus) {
		if !matched[species] {
			matched[species] = true
			added++
		}
	}
	return added
}

// flatten converts the family tree into output records sorted by family,
// then genus, then species.
func (f *Finder) flatten(tree map[string]map[string][]string) []types.GeophyteRecord {
	var records []types.GeophyteRecord

	families := sortedKeys(tree)
	for _, family := range families {
		genera := make([]string, 0, len(tree[family]))
		for genus := range tree[family] {
			genera = append(genera, genus)
		}
		sort.Strings(genera)

		for _, genus := range genera {
			species := append([]string(nil), tree[family][genus]...)
			sort.Strings(species)

			for _, name := range species {
				plant, _ := f.plants.Lookup(name)
				records = append(records, types.GeophyteRecord{
					Family:     family,
					Genus:      genus,
					Species:    name,
					CommonName: plant.CommonName,
					URL:        plant.URL,
				})
			}
		}
	}

	return records
}

// stats computes the run statistics from the family tree.
func (f *Finder) stats(tree map[string]map[string][]string, unknownGenera map[string]bool) Stats {
	stats := Stats{
		PlantsScanned: f.plants.Len(),
		Families:      len(tree),
	}

	for _, genera := range tree {
		stats.Genera += len(genera)
		for _, species := range genera {
			stats.Geophytes += len(species)
			for _, name := range species {
				if !types.IsCultivarName(name) {
					stats.SpeciesOnly++
				}
			}
		}
	}

	stats.UnknownFamilyGenera = sortedKeysBool(unknownGenera)
	return stats
}

// sortedKeys returns the sorted keys of a family tree map.
func sortedKeys(m map[string]map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedKeysBool returns the sorted keys of a string set.
func sortedKeysBool(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
