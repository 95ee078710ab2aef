package manifest

import (
	"fmt"
	"strings"

	"placard/internal/screens"
)

const (
	defaultLabel       = "bundle"
	defaultDurationSec = 15
	defaultWidth       = 1920
	defaultHeight      = 1080
	defaultExtension   = "MOV"
)

// SlotKey is the authoritative identity of one creative-playback position.
// Filenames are only a matching heuristic; every store keyed on slots uses
// this pair.
type SlotKey struct {
	ScreenID string
	Slot     int
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s/%d", k.ScreenID, k.Slot)
}

// SlotExpectation pairs a slot with its expected creative filename and the
// resolved spec snapshot. Read-only after Build.
type SlotExpectation struct {
	ScreenID   string
	ScreenName string
	Slot       int
	Filename   string
	Spec       screens.Spec
}

// Key returns the slot's authoritative identity.
func (e SlotExpectation) Key() SlotKey {
	return SlotKey{ScreenID: e.ScreenID, Slot: e.Slot}
}

// FileGroup is an externally supplied grouping that associates one creative
// filename with the screens and slots it is intended to satisfy.
type FileGroup struct {
	Name    string
	Screens []FileGroupScreen
}

// FileGroupScreen names one screen's slots covered by a file group.
type FileGroupScreen struct {
	ScreenID   string
	ScreenName string
	Slots      []int
}

// Manifest is the computed mapping of every slot to its expected filename
// and spec. It is recomputed wholesale whenever screens or file-group hints
// change; it is never patched in place.
type Manifest struct {
	entries  []SlotExpectation
	byScreen map[string]map[int]string
}

// Build computes the expected slot manifest for the given screens. When
// file-group hints cover a screen (matched by display name), its slots take
// the hinted filenames; otherwise a synthetic filename is derived from the
// screen's spec and the bundle label. Every slot of a synthetically named
// screen receives the same filename: one creative per screen.
func Build(scrs []screens.Screen, groups []FileGroup, label string) *Manifest {
	label = strings.TrimSpace(label)
	if label == "" {
		label = defaultLabel
	}

	index := groupIndex(groups)
	m := &Manifest{byScreen: make(map[string]map[int]string, len(scrs))}

	for _, screen := range scrs {
		spec := screens.ResolveSpec(screen)
		slots := make(map[int]string, screen.SlotCount)

		hinted, ok := index[normalizeName(screen.Name)]
		for slot := 1; slot <= screen.SlotCount; slot++ {
			var filename string
			if ok {
				filename = hinted.slots[slot]
				if filename == "" {
					filename = hinted.first
				}
			} else {
				filename = syntheticFilename(label, spec)
			}
			slots[slot] = filename
			m.entries = append(m.entries, SlotExpectation{
				ScreenID:   screen.ID,
				ScreenName: screen.Name,
				Slot:       slot,
				Filename:   filename,
				Spec:       spec,
			})
		}
		m.byScreen[screen.ID] = slots
	}
	return m
}

type groupEntry struct {
	slots map[int]string
	first string
}

func groupIndex(groups []FileGroup) map[string]*groupEntry {
	if len(groups) == 0 {
		return nil
	}
	index := make(map[string]*groupEntry)
	for _, group := range groups {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			continue
		}
		for _, gs := range group.Screens {
			key := normalizeName(gs.ScreenName)
			if key == "" {
				continue
			}
			entry := index[key]
			if entry == nil {
				entry = &groupEntry{slots: make(map[int]string)}
				index[key] = entry
			}
			if entry.first == "" {
				entry.first = name
			}
			for _, slot := range gs.Slots {
				if _, taken := entry.slots[slot]; !taken {
					entry.slots[slot] = name
				}
			}
		}
	}
	return index
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// syntheticFilename derives the expected filename for screens without
// file-group hints: label, duration suffix, resolution suffix, and the
// primary allowed container extension.
func syntheticFilename(label string, spec screens.Spec) string {
	duration := defaultDurationSec
	if spec.MaxDurationSec > 0 {
		duration = int(spec.MaxDurationSec)
	}
	width, height := defaultWidth, defaultHeight
	if spec.RequiredWidth > 0 && spec.RequiredHeight > 0 {
		width, height = spec.RequiredWidth, spec.RequiredHeight
	}
	extension := strings.ToLower(spec.PrimaryFormat(defaultExtension))
	return fmt.Sprintf("%s_%dsec_(%dx%d).%s", label, duration, width, height, extension)
}

// Entries returns the manifest rows in screen order, slots ascending.
func (m *Manifest) Entries() []SlotExpectation {
	if m == nil {
		return nil
	}
	entries := make([]SlotExpectation, len(m.entries))
	copy(entries, m.entries)
	return entries
}

// ExpectedFilename returns the filename a slot expects.
func (m *Manifest) ExpectedFilename(screenID string, slot int) (string, bool) {
	if m == nil {
		return "", false
	}
	slots, ok := m.byScreen[screenID]
	if !ok {
		return "", false
	}
	filename, ok := slots[slot]
	return filename, ok && filename != ""
}

// TotalSlots returns the number of slot entries across all screens.
func (m *Manifest) TotalSlots() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// MappedCount returns the number of slots with a non-empty expected filename.
func (m *Manifest) MappedCount() int {
	if m == nil {
		return 0
	}
	count := 0
	for _, entry := range m.entries {
		if entry.Filename != "" {
			count++
		}
	}
	return count
}
