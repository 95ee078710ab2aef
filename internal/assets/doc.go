// Package assets keeps the reconciled per-slot upload state: what has been
// uploaded where, what the backend thinks of it, and the readiness metrics
// gating workflow progression.
package assets
