package main

import "testing"

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{52428800, "50.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.size); got != tc.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 60); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateText("abcdefghij", 8); got != "abcde..." {
		t.Fatalf("truncateText = %q, want %q", got, "abcde...")
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel("uploading"); got != "Uploading" {
		t.Fatalf("statusLabel = %q", got)
	}
	if got := statusLabel("  "); got != "-" {
		t.Fatalf("statusLabel of blank = %q", got)
	}
}

func TestParseSlotList(t *testing.T) {
	slots, err := parseSlotList("1, 3,3")
	if err != nil {
		t.Fatalf("parseSlotList: %v", err)
	}
	if len(slots) != 2 || !slots[1] || !slots[3] {
		t.Fatalf("unexpected slots: %v", slots)
	}

	if _, err := parseSlotList("2,zero"); err == nil {
		t.Fatal("expected error for non-numeric slot")
	}
	if _, err := parseSlotList("0"); err == nil {
		t.Fatal("expected error for slot below 1")
	}
	if _, err := parseSlotList(" , "); err == nil {
		t.Fatal("expected error for empty list")
	}
}
