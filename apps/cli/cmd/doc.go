// Package cmd implements the restsuite CLI commands using Cobra.
//
// Available commands:
//   - run: Execute suites from .suite.yaml files
//   - validate: Check suite file syntax without executing
//   - list: Display all suites and tests defined in files
//   - import: Generate suite files from an OpenAPI document
//   - history: Show results of past runs
//   - init: Create a new restsuite project with example files
//   - version: Show restsuite version information
//
// The CLI supports flags for output formatting, parallel execution,
// run history recording, and watch mode for development workflows.
package cmd
