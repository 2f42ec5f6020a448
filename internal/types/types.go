// =============================================================================
// Calscape Geophyte Finder - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - geophyte
//   - csvwriter
//   - validation
//
// =============================================================================

package types

import "strings"

// =============================================================================
// PLANT TYPES
// =============================================================================

// Plant represents a single row of the Calscape search export.
type Plant struct {
	// BotanicalName is the full botanical name as exported by Calscape.
	// For cultivars this includes the quoted cultivar epithet,
	// e.g. "Brodiaea californica 'Babylon'".
	BotanicalName string

	// CommonName is the common name column of the export.
	CommonName string

	// URL is the Calscape plant page URL.
	URL string

	// Row is the 1-indexed spreadsheet row the plant came from.
	// Useful for error reporting.
	Row int
}

// Genus returns the genus of the plant, the first space-separated token
// of the botanical name.
func (p Plant) Genus() string {
	return GenusOf(p.BotanicalName)
}

// IsCultivar reports whether the botanical name names a cultivar.
// Cultivar epithets are written in single quotes, so any name containing
// an apostrophe is treated as a cultivar.
func (p Plant) IsCultivar() bool {
	return IsCultivarName(p.BotanicalName)
}

// GenusOf returns the genus portion of a botanical name.
func GenusOf(botanicalName string) string {
	name := strings.TrimSpace(botanicalName)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i]
	}
	return name
}

// IsCultivarName reports whether a botanical name contains a cultivar
// epithet (a quoted segment).
func IsCultivarName(botanicalName string) bool {
	return strings.ContainsRune(botanicalName, '\'')
}

// =============================================================================
// OUTPUT RECORD TYPES
// =============================================================================

// GeophyteRecord is a single row of the output CSV.
type GeophyteRecord struct {
	// Family is the taxonomic family of the species' genus.
	Family string

	// Genus is the genus of the species.
	Genus string

	// Species is the full botanical name (including cultivar epithet).
	Species string

	// CommonName is the common name from the Calscape export.
	CommonName string

	// URL is the Calscape plant page URL.
	URL string
}
