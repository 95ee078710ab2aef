// Package manifest computes the expected slot manifest for a campaign and
// matches uploaded filenames against it.
package manifest
