package probe

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"promo.mp4":      KindVideo,
		"PROMO.MOV":      KindVideo,
		"clip.webm":      KindVideo,
		"poster.jpg":     KindImage,
		"poster.JPEG":    KindImage,
		"banner.png":     KindImage,
		"brief.pdf":      KindOther,
		"noextension":    KindOther,
		"archive.tar.gz": KindOther,
	}
	for name, expected := range cases {
		if got := KindOf(name); got != expected {
			t.Fatalf("KindOf(%q) = %s, expected %s", name, got, expected)
		}
	}
}

func TestMetadataPredicates(t *testing.T) {
	var empty Metadata
	if empty.HasDimensions() || empty.HasDuration() {
		t.Fatal("empty metadata must report nothing measured")
	}
	full := Metadata{DurationSec: 15, Width: 1920, Height: 1080}
	if !full.HasDimensions() || !full.HasDuration() {
		t.Fatal("populated metadata must report measurements")
	}
}

func TestProbeOtherKindReturnsEmptyWithoutInspection(t *testing.T) {
	// A .pdf never reaches ffprobe, so a bogus binary must not matter.
	prober := NewFFprobe("/nonexistent/ffprobe", time.Second, nil)
	meta := prober.Probe(context.Background(), filepath.Join(t.TempDir(), "brief.pdf"))
	if meta != (Metadata{}) {
		t.Fatalf("expected empty metadata, got %#v", meta)
	}
}

func TestProbeDegradesToEmptyOnFailure(t *testing.T) {
	prober := NewFFprobe("/nonexistent/ffprobe", time.Second, nil)
	meta := prober.Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if meta != (Metadata{}) {
		t.Fatalf("expected empty metadata on probe failure, got %#v", meta)
	}
}
