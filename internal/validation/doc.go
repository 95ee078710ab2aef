// Package validation gates candidate creative files against resolved screen
// specs: container format, file size, and metadata-dependent duration,
// resolution, and orientation checks, plus the non-blocking audio advisory.
package validation
