package campaign

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"placard/internal/config"
	"placard/internal/manifest"
	"placard/internal/testsupport"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Campaign.BackendURL = server.URL
	cfg.Campaign.ID = "cmp-1"
	cfg.Campaign.UserID = "user-1"
	cfg.Campaign.APIToken = "secret"

	client, err := New(&cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client
}

func TestScreensAggregatesSlotRows(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/campaigns/cmp-1/screens" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}
		rows := `[
            {"screen_id":"scr-1","screen_name":"Mall Atrium","screen_location":"Mall","slot_number":1,
             "req_resolution_width":1920,"req_resolution_height":1080,"req_orientation":"Landscape",
             "req_max_file_size_mb":50,"req_supported_formats":["MP4","MOV"],"req_audio_supported":false,
             "req_max_duration_sec":15},
            {"screen_id":"scr-1","screen_name":"Mall Atrium","screen_location":"Mall","slot_number":2,
             "req_resolution_width":1920,"req_resolution_height":1080,"req_orientation":"Landscape",
             "req_max_file_size_mb":50,"req_supported_formats":["MP4","MOV"],"req_audio_supported":false,
             "req_max_duration_sec":15},
            {"screen_id":"scr-2","screen_name":"Station Hall","screen_location":"Station","slot_number":1,
             "req_resolution_width":1080,"req_resolution_height":1920,"req_orientation":"portrait",
             "req_max_file_size_mb":25,"req_supported_formats":["MP4"],"req_audio_supported":true,
             "req_max_duration_sec":10}
        ]`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(rows))
	}))

	scrs, err := client.Screens(context.Background())
	if err != nil {
		t.Fatalf("Screens failed: %v", err)
	}
	if len(scrs) != 2 {
		t.Fatalf("expected 2 screens, got %d", len(scrs))
	}
	first := scrs[0]
	if first.ID != "scr-1" || first.SlotCount != 2 {
		t.Fatalf("unexpected first screen: %#v", first)
	}
	if first.Resolution != "1920x1080" || first.Formats != "MP4 / MOV" {
		t.Fatalf("unexpected first screen constraints: %#v", first)
	}
	if first.AudioSupported() {
		t.Fatal("expected audio disallowed on first screen")
	}
	second := scrs[1]
	if second.SlotCount != 1 || !second.AudioSupported() {
		t.Fatalf("unexpected second screen: %#v", second)
	}
}

func TestAssetsSnapshotDecodesValidationShapes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := `[
            {"id":"as-1","screen_id":"scr-1","slot_number":1,"file":"https://cdn/as-1.mp4",
             "original_filename":"promo.mp4","file_size_bytes":1024,"status":"uploaded",
             "validation_status":"approved","validation_errors":null},
            {"id":"as-2","screen_id":"scr-1","slot_number":2,"file":"https://cdn/as-2.mp4",
             "original_filename":"b.mp4","file_size_bytes":2048,"status":"uploaded",
             "validation_status":"rejected","validation_errors":"wrong resolution"},
            {"id":"as-3","screen_id":"scr-2","slot_number":1,"file":"https://cdn/as-3.mp4",
             "original_filename":"c.mp4","file_size_bytes":4096,"status":"uploaded",
             "validation_status":"rejected",
             "validation_errors":{"note":"policy check failed","policy_failures":["too long","audio present"]}}
        ]`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(rows))
	}))

	snapshot, err := client.Assets(context.Background())
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	if len(snapshot.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(snapshot.Assets))
	}

	approved := snapshot.Assets[manifest.SlotKey{ScreenID: "scr-1", Slot: 1}]
	if approved.Status != "approved" || !approved.Approved() {
		t.Fatalf("unexpected approved asset: %#v", approved)
	}

	noted := snapshot.Assets[manifest.SlotKey{ScreenID: "scr-1", Slot: 2}]
	if noted.Validation.Note != "wrong resolution" {
		t.Fatalf("unexpected string-shaped validation: %#v", noted.Validation)
	}

	structured := snapshot.Assets[manifest.SlotKey{ScreenID: "scr-2", Slot: 1}]
	if structured.Validation.Note != "policy check failed" || len(structured.Validation.PolicyFailures) != 2 {
		t.Fatalf("unexpected structured validation: %#v", structured.Validation)
	}
}

func TestValidationErrorsArrayShape(t *testing.T) {
	var v validationErrors
	if err := json.Unmarshal([]byte(`["too big"," audio present "]`), &v); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(v.PolicyFailures) != 2 || v.PolicyFailures[1] != "audio present" {
		t.Fatalf("unexpected decode: %#v", v)
	}
}

func TestUploadSendsMultipartForm(t *testing.T) {
	source := filepath.Join(t.TempDir(), "promo.mp4")
	testsupport.WriteFile(t, source, 512)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		for field, want := range map[string]string{
			"file_name":   "promo.mp4",
			"file_size":   "512",
			"slot_number": "2",
			"screen_id":   "scr-1",
		} {
			if got := r.FormValue(field); got != want {
				t.Errorf("field %s = %q, want %q", field, got, want)
			}
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"as-9","screen_id":"scr-1","slot_number":2,
            "original_filename":"promo.mp4","file_size_bytes":512,"status":"uploaded"}`))
	}))

	key, asset, err := client.Upload(context.Background(), UploadRequest{
		ScreenID:   "scr-1",
		SlotNumber: 2,
		SourcePath: source,
		Filename:   "promo.mp4",
		SizeBytes:  512,
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if key != (manifest.SlotKey{ScreenID: "scr-1", Slot: 2}) {
		t.Fatalf("unexpected key %v", key)
	}
	if asset.RemoteID != "as-9" || asset.Status != "uploaded" {
		t.Fatalf("unexpected asset: %#v", asset)
	}
}

func TestDeleteUsesQueryParameters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.URL.Query().Get("screen_id"); got != "scr-1" {
			t.Errorf("screen_id = %q", got)
		}
		if got := r.URL.Query().Get("slot_number"); got != "3" {
			t.Errorf("slot_number = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Delete(context.Background(), manifest.SlotKey{ScreenID: "scr-1", Slot: 3}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestBackendErrorSurfacesMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"slot already occupied"}`))
	}))

	err := client.Delete(context.Background(), manifest.SlotKey{ScreenID: "scr-1", Slot: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "slot already occupied") {
		t.Fatalf("expected backend message, got %v", err)
	}
}

func TestSuggestPassesBriefThrough(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["campaign_id"] != "cmp-1" || body["user_id"] != "user-1" || body["screen_id"] != "scr-9" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"headline":"Summer Sale","tone":"upbeat"}`))
	}))

	brief, err := client.Suggest(context.Background(), "scr-9")
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(brief, &decoded); err != nil {
		t.Fatalf("brief is not JSON: %v", err)
	}
	if decoded["headline"] != "Summer Sale" {
		t.Fatalf("unexpected brief: %v", decoded)
	}
}

func TestFileGroups(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
            {"name":"promo.mp4","screens":[{"screenId":"scr-1","screenName":"Mall Atrium","slots":[1,2]}]}
        ]`))
	}))

	groups, err := client.FileGroups(context.Background())
	if err != nil {
		t.Fatalf("FileGroups failed: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "promo.mp4" {
		t.Fatalf("unexpected groups: %#v", groups)
	}
	if len(groups[0].Screens) != 1 || groups[0].Screens[0].ScreenID != "scr-1" {
		t.Fatalf("unexpected group screens: %#v", groups[0].Screens)
	}
}
