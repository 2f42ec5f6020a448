// =============================================================================
// Calscape Geophyte Finder - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'find', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (geophytes)
//   ├── findCmd (geophytes find)
//   ├── validateCmd (geophytes validate)
//   └── versionCmd (geophytes version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "geophytes",

	Short: "Find the geophytes in Calscape's database of California native plants",

	Long: `Calscape Geophyte Finder cross-references a Calscape plant search export
against the iNaturalist taxonomy and writes the geophyte species (plus
their cultivars) as a CSV.

The geophyte criteria follow Philip Rundel's article "Making Sense of
Geophyte Diversity" in Fremontia, Volume 44, Number 3, 2016: the
Liliaceae, Iridaceae and Tecophilaeaceae families, the Brodiaeoideae
genera, the geophyte genera of Agavoideae, and Allium. Custom criteria
can be supplied via a YAML file.

Both inputs are downloaded manually:
  - Calscape: run a search at https://calscape.org and export to Excel
  - Taxa:     the iNaturalist taxonomy export (taxa.csv)

Example Usage:
  geophytes find --calscape plants.xlsx --taxa taxa.csv
  geophytes find --config ./my.yaml --exclude-cultivars
  geophytes validate --calscape plants.xlsx --taxa taxa.csv`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	// Every setting has a default, so a missing config file is fine.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
