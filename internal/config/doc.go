// Package config loads, normalizes, and validates the TOML configuration,
// with PLACARD_-prefixed environment overrides.
package config
