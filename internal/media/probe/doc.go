// Package probe extracts duration and pixel dimensions from candidate media
// files using metadata-only ffprobe inspection.
package probe
