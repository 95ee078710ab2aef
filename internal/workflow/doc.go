// Package workflow drives the upload pipeline: a single background processor
// drains the queue sequentially, validating each creative against every
// matched screen before uploading slot by slot, and serializes bulk uploads
// and slot deletes against the same state.
package workflow
