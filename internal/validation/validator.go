// =============================================================================
// Calscape Geophyte Finder - Validation Module
// =============================================================================
//
// This module validates a run's configuration and input files before any
// output is written. It backs the 'validate' command.
//
// ERROR HANDLING:
//   - Problems are collected, not thrown at the first failure
//   - Each problem includes its source (config, criteria, input file)
//   - Problems are errors (the run cannot proceed) or warnings (the run
//     can proceed but the result is probably not what the user wants)
//
// =============================================================================

package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/calflora/geophytes/internal/calscape"
	"github.com/calflora/geophytes/internal/config"
	"github.com/calflora/geophytes/internal/inat"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity levels for validation problems.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	// Severity indicates the severity of the problem.
	// SeverityError = the run cannot proceed
	// SeverityWarning = the run can proceed
	Severity string

	// Source names what was being validated: "config", "criteria",
	// "calscape", or "taxa".
	Source string

	// Message is a human-readable description of the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(e.Severity), e.Source, e.Message)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the results of validation.
type Result struct {
	// Problems contains all validation problems, errors and warnings.
	Problems []*ValidationError

	// ErrorCount is the number of problems with SeverityError.
	ErrorCount int

	// WarningCount is the number of problems with SeverityWarning.
	WarningCount int
}

// IsValid is true when there are no errors (warnings allowed).
func (r *Result) IsValid() bool {
	return r.ErrorCount == 0
}

func (r *Result) addError(source, format string, args ...interface{}) {
	r.Problems = append(r.Problems, &ValidationError{
		Severity: SeverityError,
		Source:   source,
		Message:  fmt.Sprintf(format, args...),
	})
	r.ErrorCount++
}

func (r *Result) addWarning(source, format string, args ...interface{}) {
	r.Problems = append(r.Problems, &ValidationError{
		Severity: SeverityWarning,
		Source:   source,
		Message:  fmt.Sprintf(format, args...),
	})
	r.WarningCount++
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateRun validates everything a find run needs: the criteria, both
// input files, and the cross-file conditions (criteria families present
// in the taxonomy).
//
// PARAMETERS:
//   - cfg: The loaded main configuration, with any flag overrides applied.
//   - criteria: The loaded geophyte criteria.
//
// RETURNS:
//   - A Result collecting every problem found.
func ValidateRun(cfg *config.MainConfig, criteria config.Criteria) *Result {
	result := &Result{}

	validateCriteria(result, criteria)

	plants := validateCalscape(result, cfg)
	taxonomy := validateTaxa(result, cfg)

	// Cross-file checks only make sense when both inputs parsed.
	if taxonomy != nil {
		for _, family := range criteria.Families {
			if len(taxonomy.GeneraForFamily(family)) == 0 {
				result.addWarning("taxa", "criteria family %q has no genera in the taxonomy reference", family)
			}
		}
	}
	if plants != nil && plants.Len() == 0 {
		result.addWarning("calscape", "export contains no plants")
	}

	return result
}

// validateCriteria checks the criteria lists.
func validateCriteria(result *Result, criteria config.Criteria) {
	if err := config.ValidateCriteria(criteria); err != nil {
		result.addError("criteria", "%v", err)
	}
}

// validateCalscape checks that the Calscape export exists and parses.
// Returns the parsed list, or nil when it did not parse.
func validateCalscape(result *Result, cfg *config.MainConfig) *calscape.PlantList {
	if cfg.CalscapePath == "" {
		result.addError("calscape", "no export path configured (set calscape_xlsx or pass --calscape)")
		return nil
	}
	if _, err := os.Stat(cfg.CalscapePath); err != nil {
		result.addError("calscape", "cannot access %s: %v", cfg.CalscapePath, err)
		return nil
	}

	plants, err := calscape.Parse(cfg.CalscapePath, cfg.Calscape)
	if err != nil {
		result.addError("calscape", "%v", err)
		return nil
	}
	return plants
}

// validateTaxa checks that the taxa CSV exists and parses.
// Returns the parsed taxonomy, or nil when it did not parse.
func validateTaxa(result *Result, cfg *config.MainConfig) *inat.Taxonomy {
	if cfg.TaxaPath == "" {
		result.addError("taxa", "no taxa path configured (set inat_taxa_csv or pass --taxa)")
		return nil
	}
	if _, err := os.Stat(cfg.TaxaPath); err != nil {
		result.addError("taxa", "cannot access %s: %v", cfg.TaxaPath, err)
		return nil
	}

	taxonomy, err := inat.Parse(cfg.TaxaPath)
	if err != nil {
		result.addError("taxa", "%v", err)
		return nil
	}
	if taxonomy.GenusCount() == 0 {
		result.addWarning("taxa", "no plant genus rows found; is this the right file?")
	}
	return taxonomy
}
