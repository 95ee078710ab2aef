package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"placard/internal/assets"
	"placard/internal/manifest"
	"placard/internal/screens"
	"placard/internal/services/campaign"
	"placard/internal/session"
	"placard/internal/testsupport"
)

type stubBackend struct {
	screens []screens.Screen
}

func (s stubBackend) Screens(context.Context) ([]screens.Screen, error) {
	return s.screens, nil
}

func (s stubBackend) FileGroups(context.Context) ([]manifest.FileGroup, error) {
	return nil, nil
}

func (s stubBackend) Assets(context.Context) (campaign.Snapshot, error) {
	return campaign.Snapshot{FetchedAt: time.Now().UTC()}, nil
}

func newTestHandler(t *testing.T) (*Handler, *session.Session) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	backend := stubBackend{screens: []screens.Screen{
		{ID: "scr-1", Name: "Mall Atrium", SlotCount: 2, Formats: "MP4", MaxSizeMB: 50},
	}}
	sess := session.New(cfg, backend, nil)
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("session refresh failed: %v", err)
	}

	source := filepath.Join(t.TempDir(), "promo.mp4")
	testsupport.WriteFile(t, source, 128)
	testsupport.Enqueue(t, store, source)

	return NewHandler(cfg, sess, store, nil, nil), sess
}

func getJSON(t *testing.T, handler http.Handler, path string, out any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s returned %d: %s", path, rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
}

func TestManifestEndpoint(t *testing.T) {
	handler, sess := newTestHandler(t)
	sess.Assets.Put(manifest.SlotKey{ScreenID: "scr-1", Slot: 1}, assets.Asset{Status: assets.StatusUploaded})

	var view ManifestView
	getJSON(t, handler.Router(), "/api/v1/manifest", &view)

	if view.CampaignID != "cmp-test" {
		t.Fatalf("unexpected campaign id %q", view.CampaignID)
	}
	if len(view.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(view.Entries))
	}
	if view.Entries[0].Status != assets.StatusUploaded {
		t.Fatalf("expected uploaded status, got %q", view.Entries[0].Status)
	}
	if view.Entries[1].Status != assets.StatusNeeded {
		t.Fatalf("expected needed status, got %q", view.Entries[1].Status)
	}
}

func TestAssetsEndpointSortsByScreenAndSlot(t *testing.T) {
	handler, sess := newTestHandler(t)
	sess.Assets.Put(manifest.SlotKey{ScreenID: "scr-1", Slot: 2}, assets.Asset{Status: assets.StatusApproved, Filename: "b.mp4"})
	sess.Assets.Put(manifest.SlotKey{ScreenID: "scr-1", Slot: 1}, assets.Asset{Status: assets.StatusUploaded, Filename: "a.mp4"})

	var views []AssetView
	getJSON(t, handler.Router(), "/api/v1/assets", &views)

	if len(views) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(views))
	}
	if views[0].SlotNumber != 1 || views[1].SlotNumber != 2 {
		t.Fatalf("expected slot order, got %#v", views)
	}
}

func TestQueueEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	var views []QueueEntryView
	getJSON(t, handler.Router(), "/api/v1/queue", &views)

	if len(views) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(views))
	}
	if views[0].Filename != "promo.mp4" || views[0].Status != "queued" {
		t.Fatalf("unexpected entry: %#v", views[0])
	}
}

func TestReadinessEndpoint(t *testing.T) {
	handler, sess := newTestHandler(t)

	var before ReadinessView
	getJSON(t, handler.Router(), "/api/v1/readiness", &before)
	if before.Ready || before.UploadedCount != 0 {
		t.Fatalf("expected not ready, got %#v", before)
	}
	if before.TotalSlots != 2 {
		t.Fatalf("expected 2 total slots, got %d", before.TotalSlots)
	}

	sess.Assets.Put(manifest.SlotKey{ScreenID: "scr-1", Slot: 1}, assets.Asset{Status: assets.StatusUploaded})

	var after ReadinessView
	getJSON(t, handler.Router(), "/api/v1/readiness", &after)
	if !after.Ready || after.UploadedCount != 1 {
		t.Fatalf("expected ready, got %#v", after)
	}
}
