// Package services defines the shared error taxonomy for remote collaborators
// and external tools.
package services
