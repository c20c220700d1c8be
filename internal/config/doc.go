// Package config loads, normalizes, and validates the TOML configuration
// used by the tunepull CLI. Defaults come first, then the config file on
// disk, then normalization fills gaps and expands paths.
package config
