// Package session holds the per-campaign working state: the fetched screen
// set, the derived slot manifest, and the reconciled asset store.
package session
