// Package logging provides slog construction helpers and the console/JSON
// handlers shared by the CLI and the queue processor.
package logging
