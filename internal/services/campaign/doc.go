// Package campaign implements the HTTP client for the campaign backend:
// screen/slot manifests, asset snapshots, per-slot uploads and deletes,
// bundle file-group hints, and the pass-through suggestion trigger.
package campaign
