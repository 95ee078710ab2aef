package manifest

import (
	"reflect"
	"testing"

	"placard/internal/screens"
)

func testScreens() []screens.Screen {
	return []screens.Screen{
		{
			ID:             "scr-1",
			Name:           "Mall Atrium",
			SlotCount:      2,
			Resolution:     "1920x1080",
			Orientation:    screens.OrientationLandscape,
			Formats:        "MP4",
			MaxDurationSec: 15,
		},
		{
			ID:          "scr-2",
			Name:        "Station Hall",
			SlotCount:   3,
			Resolution:  "1080x1920",
			Orientation: screens.OrientationPortrait,
			Formats:     "MP4 / MOV",
		},
	}
}

func TestBuildProducesOneEntryPerSlot(t *testing.T) {
	m := Build(testScreens(), nil, "")
	if m.TotalSlots() != 5 {
		t.Fatalf("expected 5 slot entries, got %d", m.TotalSlots())
	}
	if m.MappedCount() != 5 {
		t.Fatalf("expected every slot mapped, got %d", m.MappedCount())
	}
}

func TestBuildSyntheticFilenames(t *testing.T) {
	m := Build(testScreens(), nil, "summer")

	// scr-1 declares a 15s limit and 1920x1080; scr-2 falls back to the
	// 15sec default and keeps its own resolution.
	first, ok := m.ExpectedFilename("scr-1", 1)
	if !ok || first != "summer_15sec_(1920x1080).mp4" {
		t.Fatalf("unexpected scr-1 filename: %q ok=%v", first, ok)
	}
	second, _ := m.ExpectedFilename("scr-2", 3)
	if second != "summer_15sec_(1080x1920).mp4" {
		t.Fatalf("unexpected scr-2 filename: %q", second)
	}

	// All slots of one screen share a single creative under synthetic naming.
	for slot := 1; slot <= 2; slot++ {
		filename, _ := m.ExpectedFilename("scr-1", slot)
		if filename != first {
			t.Fatalf("slot %d filename %q differs from slot 1 %q", slot, filename, first)
		}
	}
}

func TestBuildSyntheticDefaults(t *testing.T) {
	m := Build([]screens.Screen{{ID: "scr-3", Name: "Bare", SlotCount: 1}}, nil, "")
	filename, _ := m.ExpectedFilename("scr-3", 1)
	if filename != "bundle_15sec_(1920x1080).mov" {
		t.Fatalf("unexpected default filename: %q", filename)
	}
}

func TestBuildUsesFileGroupHints(t *testing.T) {
	groups := []FileGroup{
		{
			Name: "promo.mp4",
			Screens: []FileGroupScreen{
				{ScreenID: "scr-1", ScreenName: "Mall Atrium", Slots: []int{1}},
			},
		},
		{
			Name: "promo-b.mp4",
			Screens: []FileGroupScreen{
				{ScreenID: "scr-1", ScreenName: "Mall Atrium", Slots: []int{2}},
			},
		},
	}

	m := Build(testScreens(), groups, "")
	first, _ := m.ExpectedFilename("scr-1", 1)
	second, _ := m.ExpectedFilename("scr-1", 2)
	if first != "promo.mp4" || second != "promo-b.mp4" {
		t.Fatalf("unexpected hinted filenames: %q, %q", first, second)
	}

	// scr-2 has no hint entry and falls back to synthetic naming.
	fallback, _ := m.ExpectedFilename("scr-2", 1)
	if fallback != "bundle_15sec_(1080x1920).mp4" {
		t.Fatalf("unexpected fallback filename: %q", fallback)
	}
}

func TestBuildHintFallsBackToFirstFilenameForUnmappedSlots(t *testing.T) {
	groups := []FileGroup{
		{
			Name: "promo.mp4",
			Screens: []FileGroupScreen{
				// Slot 2 is not named; it inherits the entry's first filename.
				{ScreenName: "Mall Atrium", Slots: []int{1}},
			},
		},
	}
	m := Build(testScreens(), groups, "")
	second, _ := m.ExpectedFilename("scr-1", 2)
	if second != "promo.mp4" {
		t.Fatalf("expected first-filename fallback, got %q", second)
	}
}

func TestBuildHintMatchesNameCaseInsensitively(t *testing.T) {
	groups := []FileGroup{
		{
			Name: "promo.mp4",
			Screens: []FileGroupScreen{
				{ScreenName: "mall atrium", Slots: []int{1, 2}},
			},
		},
	}
	m := Build(testScreens(), groups, "")
	filename, _ := m.ExpectedFilename("scr-1", 1)
	if filename != "promo.mp4" {
		t.Fatalf("expected case-insensitive hint match, got %q", filename)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	scrs := testScreens()
	groups := []FileGroup{
		{Name: "promo.mp4", Screens: []FileGroupScreen{{ScreenName: "Mall Atrium", Slots: []int{1, 2}}}},
	}
	first := Build(scrs, groups, "summer")
	second := Build(scrs, groups, "summer")
	if !reflect.DeepEqual(first.Entries(), second.Entries()) {
		t.Fatal("expected identical manifests for unchanged inputs")
	}
}

func TestEntriesAreACopy(t *testing.T) {
	m := Build(testScreens(), nil, "")
	entries := m.Entries()
	entries[0].Filename = "mutated"
	if fresh := m.Entries(); fresh[0].Filename == "mutated" {
		t.Fatal("Entries must return a copy")
	}
}
