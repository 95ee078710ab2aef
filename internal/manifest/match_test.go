package manifest

import (
	"testing"
)

func hintedManifest() *Manifest {
	groups := []FileGroup{
		{
			Name: "promo.mp4",
			Screens: []FileGroupScreen{
				{ScreenName: "Mall Atrium", Slots: []int{1, 2}},
				{ScreenName: "Station Hall", Slots: []int{1}},
			},
		},
		{
			Name: "vertical.mp4",
			Screens: []FileGroupScreen{
				{ScreenName: "Station Hall", Slots: []int{2, 3}},
			},
		},
	}
	return Build(testScreens(), groups, "")
}

func TestMatchSpansScreens(t *testing.T) {
	m := hintedManifest()
	matches := m.Match("promo.mp4")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	keys := map[SlotKey]struct{}{}
	for _, match := range matches {
		keys[match.Key()] = struct{}{}
	}
	for _, expected := range []SlotKey{
		{ScreenID: "scr-1", Slot: 1},
		{ScreenID: "scr-1", Slot: 2},
		{ScreenID: "scr-2", Slot: 1},
	} {
		if _, ok := keys[expected]; !ok {
			t.Fatalf("missing expected match %v", expected)
		}
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	m := hintedManifest()
	if got := len(m.Match("PROMO.MP4")); got != 3 {
		t.Fatalf("expected case-insensitive match, got %d", got)
	}
}

func TestMatchUsesBaseName(t *testing.T) {
	m := hintedManifest()
	if got := len(m.Match("/tmp/downloads/Promo.mp4")); got != 3 {
		t.Fatalf("expected base-name match, got %d", got)
	}
}

func TestMatchReturnsOnlyMatchingSlots(t *testing.T) {
	m := hintedManifest()
	matches := m.Match("vertical.mp4")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, match := range matches {
		if match.ScreenID != "scr-2" {
			t.Fatalf("unexpected screen %s in matches", match.ScreenID)
		}
	}
}

func TestMatchUnknownFilename(t *testing.T) {
	m := hintedManifest()
	if matches := m.Match("stranger.mp4"); len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestMatchedScreensDeduplicates(t *testing.T) {
	m := hintedManifest()
	distinct := MatchedScreens(m.Match("promo.mp4"))
	if len(distinct) != 2 {
		t.Fatalf("expected 2 distinct screens, got %d", len(distinct))
	}
	if distinct[0].ScreenID != "scr-1" || distinct[1].ScreenID != "scr-2" {
		t.Fatalf("expected manifest order, got %s then %s", distinct[0].ScreenID, distinct[1].ScreenID)
	}
}

func TestMatchNilManifest(t *testing.T) {
	var m *Manifest
	if matches := m.Match("promo.mp4"); matches != nil {
		t.Fatal("expected nil matches from nil manifest")
	}
}
