package manifest

import (
	"path/filepath"
	"strings"
)

// Match returns every slot expectation whose expected filename equals the
// uploaded file's base name, compared case-insensitively. One file may
// satisfy several slots across several screens; an empty result means no
// slot expects the file, which callers must surface to the operator.
func (m *Manifest) Match(filename string) []SlotExpectation {
	if m == nil {
		return nil
	}
	base := strings.ToLower(strings.TrimSpace(filepath.Base(filename)))
	if base == "" || base == "." {
		return nil
	}
	var matches []SlotExpectation
	for _, entry := range m.entries {
		if entry.Filename != "" && strings.ToLower(entry.Filename) == base {
			matches = append(matches, entry)
		}
	}
	return matches
}

// MatchedScreens returns the distinct screens among the matches, preserving
// manifest order. Validation runs once per screen spec, not once per slot.
func MatchedScreens(matches []SlotExpectation) []SlotExpectation {
	seen := make(map[string]struct{}, len(matches))
	var distinct []SlotExpectation
	for _, match := range matches {
		if _, ok := seen[match.ScreenID]; ok {
			continue
		}
		seen[match.ScreenID] = struct{}{}
		distinct = append(distinct, match)
	}
	return distinct
}
