package screens

import "strings"

// Audio policy values as reported by the campaign backend.
const (
	AudioAllowed    = "Allowed"
	AudioNotAllowed = "Not Allowed"
)

// Orientation values used by screen specs.
const (
	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"
)

// Screen describes one signage screen in a campaign. Fields mirror the
// backend capability record; SlotCount is the number of creative-playback
// positions sold on the screen. The raw capability strings are normalized
// by ResolveSpec, not here.
type Screen struct {
	ID             string
	Name           string
	Location       string
	SlotCount      int
	Resolution     string // "1920x1080", "—", or empty when unconstrained
	Orientation    string // "landscape", "portrait", or empty
	Formats        string // " / " separated container list, e.g. "MP4 / MOV"
	MaxSizeMB      float64
	MaxDurationSec float64 // video only; 0 means no limit declared
	AudioPolicy    string  // AudioAllowed or AudioNotAllowed
}

// AudioSupported reports whether the screen plays creative audio.
func (s Screen) AudioSupported() bool {
	return !strings.EqualFold(strings.TrimSpace(s.AudioPolicy), AudioNotAllowed)
}

// FormatList returns the ordered allowed container formats, trimmed and
// uppercased. An empty list means no restriction.
func (s Screen) FormatList() []string {
	raw := strings.TrimSpace(s.Formats)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, " / ")
	formats := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToUpper(strings.TrimSpace(part))
		if trimmed != "" {
			formats = append(formats, trimmed)
		}
	}
	return formats
}
