package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of an upload queue entry.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusError     Status = "error"
)

var allStatuses = []Status{
	StatusQueued,
	StatusUploading,
	StatusDone,
	StatusError,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus normalizes user input into a known status.
func ParseStatus(value string) (Status, bool) {
	candidate := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// Entry represents a queued creative upload persisted in SQLite.
type Entry struct {
	ID           int64
	Filename     string
	SourcePath   string
	SizeBytes    int64
	Status       Status
	Progress     int
	ErrorMessage string
	AttemptID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetProgress raises the entry's progress. Progress is monotonic: a lower
// value than the current one is ignored, and failures keep whatever progress
// had been reached.
func (e *Entry) SetProgress(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent > e.Progress {
		e.Progress = percent
	}
}

// MarkError transitions the entry into the error state without resetting
// progress.
func (e *Entry) MarkError(message string) {
	e.Status = StatusError
	e.ErrorMessage = message
}

// HealthSummary describes aggregated queue counts per lifecycle state.
type HealthSummary struct {
	Total     int
	Queued    int
	Uploading int
	Done      int
	Errored   int
}

// DatabaseHealth captures diagnostic information about the queue database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	IntegrityCheck   bool
	TotalEntries     int
	Error            string
}
