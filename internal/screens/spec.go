package screens

import (
	"strconv"
	"strings"
)

const defaultMaxSizeMB = 50

// Spec is the normalized constraint record derived from a screen's raw
// capability fields. Zero values mean "unconstrained" except MaxSizeMB,
// which always carries a limit.
type Spec struct {
	AllowedFormats      []string
	MaxSizeMB           float64
	MaxDurationSec      float64
	RequiredWidth       int
	RequiredHeight      int
	RequiredOrientation string
	AudioAllowed        bool
}

// ResolveSpec derives the normalized constraint record for a screen.
// Pure: no network access, no side effects.
func ResolveSpec(s Screen) Spec {
	spec := Spec{
		AllowedFormats: s.FormatList(),
		MaxSizeMB:      s.MaxSizeMB,
		MaxDurationSec: s.MaxDurationSec,
		AudioAllowed:   s.AudioSupported(),
	}
	if spec.MaxSizeMB <= 0 {
		spec.MaxSizeMB = defaultMaxSizeMB
	}
	if width, height, ok := ParseResolution(s.Resolution); ok {
		spec.RequiredWidth = width
		spec.RequiredHeight = height
	}
	switch strings.ToLower(strings.TrimSpace(s.Orientation)) {
	case OrientationLandscape:
		spec.RequiredOrientation = OrientationLandscape
	case OrientationPortrait:
		spec.RequiredOrientation = OrientationPortrait
	}
	return spec
}

// ParseResolution parses a "WxH" string. "—", empty, or malformed values
// mean the resolution is unconstrained.
func ParseResolution(value string) (int, int, bool) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || cleaned == "—" {
		return 0, 0, false
	}
	parts := strings.SplitN(strings.ToLower(cleaned), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width <= 0 {
		return 0, 0, false
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// PrimaryFormat returns the first allowed container format, or fallback when
// the screen declares no restriction.
func (s Spec) PrimaryFormat(fallback string) string {
	if len(s.AllowedFormats) > 0 {
		return s.AllowedFormats[0]
	}
	return strings.ToUpper(strings.TrimSpace(fallback))
}
