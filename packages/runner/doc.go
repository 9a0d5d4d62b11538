// Package runner orchestrates a run over suite files: loading and
// compiling each file, executing its suites sequentially or all files
// concurrently, and folding the per-file statistics into one aggregate
// result.
package runner
