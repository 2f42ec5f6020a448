// =============================================================================
// Calscape Geophyte Finder - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and the geophyte
// criteria configuration.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Input paths and output settings
//   2. Criteria Config (optional): The families and genera treated as geophytes
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Optional: every setting has a default, so the tool runs with flags alone
//   - Overridable: the built-in geophyte criteria can be replaced from a file
//   - Validated: configurations are validated on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// CalscapePath is the path to the Calscape search export (.xlsx).
	// Downloading the export is a manual step; see the README.
	CalscapePath string `yaml:"calscape_xlsx"`

	// TaxaPath is the path to the iNaturalist taxa CSV.
	TaxaPath string `yaml:"inat_taxa_csv"`

	// CriteriaFile is an optional YAML file overriding the built-in
	// geophyte criteria. Empty means use the built-in criteria.
	CriteriaFile string `yaml:"criteria_file"`

	// Calscape contains settings for parsing the Calscape export.
	Calscape CalscapeSettings `yaml:"calscape_settings"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where the geophyte CSV and run report
	// are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// OutputNameFormat defines the format for the output file name.
	// Placeholders:
	//   {name}      - The base name "geophytes"
	//   {date}      - Current date (YYYYMMDD)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {runid}     - The UUID of this run
	// Default: "{name}_{date}.csv"
	OutputNameFormat string `yaml:"output_name_format"`

	// ExcludeCultivars drops cultivar rows from the output CSV.
	// The summary always reports both counts.
	// Default: false
	ExcludeCultivars bool `yaml:"exclude_cultivars"`

	// SkipReport disables the run report written next to the output CSV.
	// Default: false (a report is written)
	SkipReport bool `yaml:"skip_report"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// CALSCAPE SETTINGS STRUCTURE
// =============================================================================

// CalscapeSettings contains settings for parsing the Calscape XLSX export.
// The export format has been stable for years; these settings exist so a
// format change is a config edit, not a code change.
type CalscapeSettings struct {
	// Sheet is the name of the worksheet to read.
	// Empty means the first sheet of the workbook.
	Sheet string `yaml:"sheet"`

	// HeaderRow is the 1-indexed row containing the column headers.
	// The Calscape export places headers on row 6, below a preamble.
	// Default: 6
	HeaderRow int `yaml:"header_row"`

	// BotanicalNameHeader is the header of the botanical name column.
	// Default: "Botanical Name"
	BotanicalNameHeader string `yaml:"botanical_name_header"`

	// CommonNameHeader is the header of the common name column.
	// Default: "Common Name"
	CommonNameHeader string `yaml:"common_name_header"`

	// URLHeader is the header of the plant URL column.
	// Default: "Plant Url"
	URLHeader string `yaml:"url_header"`
}

// =============================================================================
// CRITERIA CONFIGURATION STRUCTURE
// =============================================================================

// Criteria defines which plants count as geophytes. A species qualifies
// when its genus belongs to one of the listed families (per the taxonomy
// reference) or appears directly in the genus list.
//
// The built-in criteria follow Philip Rundel's "Making Sense of Geophyte
// Diversity" (Fremontia 44(3), 2016).
type Criteria struct {
	// Families are taxonomic families whose California genera are all
	// geophytes.
	Families []string `yaml:"families"`

	// Genera are individual geophyte genera, used for subfamilies that
	// mix geophytes and non-geophytes (e.g. Brodiaeoideae within
	// Asparagaceae) and for genera like Allium.
	Genera []string `yaml:"genera"`
}

// DefaultCriteria returns the built-in geophyte criteria.
//
// The Brodiaeoideae genus list follows
// https://www.mobot.org/mobot/research/APweb/genera/themidaceaegen.html;
// the agave-subfamily geophyte genera follow
// https://www.pacificbulbsociety.org/pbswiki/index.php/Agavaceae.
func DefaultCriteria() Criteria {
	return Criteria{
		Families: []string{
			"Liliaceae",
			"Iridaceae",
			"Tecophilaeaceae",
		},
		Genera: []string{
			// Brodiaeoideae
			"Androstephium",
			"Bessera",
			"Bloomeria",
			"Brodiaea",
			"Dandya",
			"Dichelostemma",
			"Milla",
			"Muilla",
			"Petronymphe",
			"Triteleia",
			"Triteleiopsis",
			// Agavoideae geophytes
			"Camassia",
			"Chlorogalum",
			"Hesperocallis",
			"Leucocrinum",
			// Amaryllidaceae is mostly non-native; Allium is the exception.
			"Allium",
		},
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed.
//
// A missing config file is not an error: the defaults are returned so the
// tool can be driven entirely by command-line flags.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyMainConfigDefaults(&config)
			return &config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{name}_{date}.csv"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Calscape.HeaderRow == 0 {
		config.Calscape.HeaderRow = 6
	}
	if config.Calscape.BotanicalNameHeader == "" {
		config.Calscape.BotanicalNameHeader = "Botanical Name"
	}
	if config.Calscape.CommonNameHeader == "" {
		config.Calscape.CommonNameHeader = "Common Name"
	}
	if config.Calscape.URLHeader == "" {
		config.Calscape.URLHeader = "Plant Url"
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if config.Calscape.HeaderRow < 1 {
		return fmt.Errorf("calscape_settings.header_row must be at least 1, got %d", config.Calscape.HeaderRow)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	return nil
}

// LoadCriteria loads the geophyte criteria.
//
// PARAMETERS:
//   - criteriaPath: The path to the criteria YAML file. Empty means use
//     the built-in criteria.
//
// RETURNS:
//   - The criteria to apply.
//   - An error if the file cannot be read or parsed, or the criteria are
//     empty.
func LoadCriteria(criteriaPath string) (Criteria, error) {
	if criteriaPath == "" {
		return DefaultCriteria(), nil
	}

	data, err := os.ReadFile(criteriaPath)
	if err != nil {
		return Criteria{}, fmt.Errorf("failed to read criteria file: %w", err)
	}

	var criteria Criteria
	if err := yaml.Unmarshal(data, &criteria); err != nil {
		return Criteria{}, fmt.Errorf("failed to parse criteria file: %w", err)
	}

	if err := ValidateCriteria(criteria); err != nil {
		return Criteria{}, fmt.Errorf("invalid criteria: %w", err)
	}

	return criteria, nil
}

// ValidateCriteria checks that criteria are usable: at least one family
// or genus, and every name capitalized the way taxonomic names are
// (criteria matching is exact, so a lowercase genus would silently match
// nothing).
func ValidateCriteria(criteria Criteria) error {
	if len(criteria.Families) == 0 && len(criteria.Genera) == 0 {
		return fmt.Errorf("criteria must list at least one family or genus")
	}

	for _, family := range criteria.Families {
		if err := validateTaxonName("family", family); err != nil {
			return err
		}
	}
	for _, genus := range criteria.Genera {
		if err := validateTaxonName("genus", genus); err != nil {
			return err
		}
	}

	return nil
}

// validateTaxonName checks a single criteria entry.
func validateTaxonName(rank, name string) error {
	if name == "" {
		return fmt.Errorf("empty %s name", rank)
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return fmt.Errorf("%s %q must be capitalized", rank, name)
	}
	return nil
}
