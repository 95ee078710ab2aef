// Package queue persists the creative upload queue in SQLite. Entries move
// queued -> uploading -> done or error; progress only ever increases, and a
// failed upload keeps the progress it reached.
package queue
