// Package output provides reporters for displaying run results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//
// Reporters receive per-test events while the run executes and render
// the aggregate summary when the run finishes.
package output
