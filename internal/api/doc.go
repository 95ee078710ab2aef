// Package api serves the read-only status endpoints: manifest, assets,
// queue, and readiness.
package api
