package assets

import (
	"sync"
	"time"

	"placard/internal/manifest"
)

// Remote lifecycle statuses reported for an uploaded asset. A slot with no
// asset row at all is "needed".
const (
	StatusNeeded    = "needed"
	StatusUploading = "uploading"
	StatusUploaded  = "uploaded"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusPending   = "pending"
	StatusPassed    = "passed"
)

// Validation carries the backend's validation verdict for an asset. The
// backend reports either a free-form note, a list of messages, or both.
type Validation struct {
	Note           string
	PolicyFailures []string
}

// Empty reports whether the backend attached no validation detail.
func (v Validation) Empty() bool {
	return v.Note == "" && len(v.PolicyFailures) == 0
}

// Asset is the reconciled remote state for one slot.
type Asset struct {
	RemoteID   string
	Filename   string
	SizeBytes  int64
	URL        string
	Status     string
	Validation Validation
	UpdatedAt  time.Time
}

// Approved reports whether the backend accepted the asset.
func (a Asset) Approved() bool {
	return a.Status == StatusApproved || a.Status == StatusPassed
}

// Metrics aggregates slot readiness for the workflow gate.
type Metrics struct {
	TotalSlots    int
	MappedCount   int
	UploadedCount int
	ApprovedCount int
}

// Ready reports whether the campaign may progress to the next stage.
func (m Metrics) Ready() bool {
	return m.UploadedCount > 0
}

// Store holds the per-slot asset state. Writes come from the queue processor
// and from snapshot refreshes; reads come from the CLI and the status API.
type Store struct {
	mu    sync.RWMutex
	slots map[manifest.SlotKey]Asset
}

// NewStore returns an empty asset store.
func NewStore() *Store {
	return &Store{slots: make(map[manifest.SlotKey]Asset)}
}

// Put records or replaces the asset for a slot, stamping the update time.
func (s *Store) Put(key manifest.SlotKey, asset Asset) {
	if asset.UpdatedAt.IsZero() {
		asset.UpdatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = asset
}

// Get returns the asset for a slot, if any.
func (s *Store) Get(key manifest.SlotKey) (Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.slots[key]
	return asset, ok
}

// Remove drops the asset for a slot, returning whether one existed.
func (s *Store) Remove(key manifest.SlotKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.slots[key]
	delete(s.slots, key)
	return ok
}

// StatusFor returns the slot's lifecycle status, "needed" when no asset row
// exists for its key.
func (s *Store) StatusFor(key manifest.SlotKey) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.slots[key]
	if !ok {
		return StatusNeeded
	}
	return asset.Status
}

// Snapshot returns a copy of the current slot map.
func (s *Store) Snapshot() map[manifest.SlotKey]Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[manifest.SlotKey]Asset, len(s.slots))
	for key, asset := range s.slots {
		out[key] = asset
	}
	return out
}

// MergeSnapshot reconciles a backend snapshot fetched at fetchedAt with the
// local state. Snapshot rows are taken as truth except where a local
// optimistic update is newer than the fetch, so an in-flight upload is not
// clobbered by a stale read. Local entries absent from the snapshot survive
// only when newer than the fetch.
func (s *Store) MergeSnapshot(snapshot map[manifest.SlotKey]Asset, fetchedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[manifest.SlotKey]Asset, len(snapshot))
	for key, asset := range snapshot {
		if asset.UpdatedAt.IsZero() {
			asset.UpdatedAt = fetchedAt
		}
		merged[key] = asset
	}
	for key, local := range s.slots {
		if !local.UpdatedAt.After(fetchedAt) {
			continue
		}
		merged[key] = local
	}
	s.slots = merged
}

// Metrics computes readiness counts for the manifest's slot set. Uploaded
// means any non-needed status; approved additionally requires backend
// acceptance.
func (s *Store) Metrics(m *manifest.Manifest) Metrics {
	metrics := Metrics{}
	if m == nil {
		return metrics
	}
	metrics.TotalSlots = m.TotalSlots()
	metrics.MappedCount = m.MappedCount()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range m.Entries() {
		asset, ok := s.slots[entry.Key()]
		if !ok {
			continue
		}
		metrics.UploadedCount++
		if asset.Approved() {
			metrics.ApprovedCount++
		}
	}
	return metrics
}
