package assets

import (
	"testing"
	"time"

	"placard/internal/manifest"
	"placard/internal/screens"
)

func slotKey(screen string, slot int) manifest.SlotKey {
	return manifest.SlotKey{ScreenID: screen, Slot: slot}
}

func buildManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	return manifest.Build([]screens.Screen{
		{ID: "scr-1", Name: "Mall Atrium", SlotCount: 2},
		{ID: "scr-2", Name: "Station Hall", SlotCount: 1},
	}, nil, "")
}

func TestStatusForDefaultsToNeeded(t *testing.T) {
	store := NewStore()
	if got := store.StatusFor(slotKey("scr-1", 1)); got != StatusNeeded {
		t.Fatalf("expected needed, got %s", got)
	}

	store.Put(slotKey("scr-1", 1), Asset{Status: StatusUploaded})
	if got := store.StatusFor(slotKey("scr-1", 1)); got != StatusUploaded {
		t.Fatalf("expected uploaded, got %s", got)
	}

	if !store.Remove(slotKey("scr-1", 1)) {
		t.Fatal("expected Remove to report existing asset")
	}
	if got := store.StatusFor(slotKey("scr-1", 1)); got != StatusNeeded {
		t.Fatalf("expected needed after removal, got %s", got)
	}
}

func TestMetricsCountsUploadedAndApproved(t *testing.T) {
	m := buildManifest(t)
	store := NewStore()
	store.Put(slotKey("scr-1", 1), Asset{Status: StatusUploaded})
	store.Put(slotKey("scr-1", 2), Asset{Status: StatusApproved})
	store.Put(slotKey("scr-2", 1), Asset{Status: StatusPassed})

	metrics := store.Metrics(m)
	if metrics.TotalSlots != 3 || metrics.MappedCount != 3 {
		t.Fatalf("unexpected slot counts: %#v", metrics)
	}
	if metrics.UploadedCount != 3 {
		t.Fatalf("expected 3 uploaded, got %d", metrics.UploadedCount)
	}
	if metrics.ApprovedCount != 2 {
		t.Fatalf("expected approved+passed = 2, got %d", metrics.ApprovedCount)
	}
	if !metrics.Ready() {
		t.Fatal("expected readiness with uploads present")
	}
}

func TestMetricsEmptyStoreNotReady(t *testing.T) {
	metrics := NewStore().Metrics(buildManifest(t))
	if metrics.UploadedCount != 0 || metrics.Ready() {
		t.Fatalf("expected not ready, got %#v", metrics)
	}
}

func TestMergeSnapshotKeepsNewerLocalEntries(t *testing.T) {
	store := NewStore()
	fetchedAt := time.Now().UTC()

	// Optimistic local write that landed after the snapshot was taken.
	fresh := Asset{Status: StatusUploading, Filename: "promo.mp4", UpdatedAt: fetchedAt.Add(2 * time.Second)}
	store.Put(slotKey("scr-1", 1), fresh)

	// Stale local entry the snapshot no longer knows about.
	store.Put(slotKey("scr-2", 1), Asset{Status: StatusUploaded, UpdatedAt: fetchedAt.Add(-time.Minute)})

	snapshot := map[manifest.SlotKey]Asset{
		slotKey("scr-1", 1): {Status: StatusUploaded, Filename: "old.mp4"},
		slotKey("scr-1", 2): {Status: StatusApproved},
	}
	store.MergeSnapshot(snapshot, fetchedAt)

	got, ok := store.Get(slotKey("scr-1", 1))
	if !ok || got.Status != StatusUploading || got.Filename != "promo.mp4" {
		t.Fatalf("expected newer local entry to win, got %#v", got)
	}
	if _, ok := store.Get(slotKey("scr-1", 2)); !ok {
		t.Fatal("expected snapshot-only entry to be adopted")
	}
	if _, ok := store.Get(slotKey("scr-2", 1)); ok {
		t.Fatal("expected stale local-only entry to be dropped")
	}
}

func TestMergeSnapshotStampsMissingTimes(t *testing.T) {
	store := NewStore()
	fetchedAt := time.Now().UTC()
	store.MergeSnapshot(map[manifest.SlotKey]Asset{
		slotKey("scr-1", 1): {Status: StatusUploaded},
	}, fetchedAt)

	got, _ := store.Get(slotKey("scr-1", 1))
	if !got.UpdatedAt.Equal(fetchedAt) {
		t.Fatalf("expected fetch time stamp, got %v", got.UpdatedAt)
	}
}

func TestValidationEmpty(t *testing.T) {
	if !(Validation{}).Empty() {
		t.Fatal("zero validation should be empty")
	}
	if (Validation{Note: "rejected by policy"}).Empty() {
		t.Fatal("note makes validation non-empty")
	}
}
