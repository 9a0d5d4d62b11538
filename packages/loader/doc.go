// Package loader reads suite definition files. It parses the YAML
// document model, validates it, and compiles suite definitions into the
// executable actions the run orchestrator registers. Parsed files are
// cached per path so watch mode can reload only what changed.
package loader
