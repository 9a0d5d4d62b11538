// Package config handles configuration loading for restsuite.
//
// It provides functionality for:
//   - Loading configuration from restsuite.yaml or .restsuite.yaml files
//   - Default configuration values
//   - Merging file configuration with command-line overrides
package config
