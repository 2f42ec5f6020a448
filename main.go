// =============================================================================
// Calscape Geophyte Finder - Main Entry Point
// =============================================================================
//
// This is the main entry point for the geophyte finder CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   geophytes find          - Cross-reference the inputs and write the geophyte CSV
//   geophytes validate      - Validate configuration and input files without processing
//   geophytes version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/calflora/geophytes/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
