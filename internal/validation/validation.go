package validation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"placard/internal/media/probe"
	"placard/internal/screens"
)

const durationToleranceSec = 0.5

// Candidate describes one uploaded file awaiting validation.
type Candidate struct {
	Path      string
	Name      string
	SizeBytes int64
}

// Base returns the candidate's base filename, preferring the declared name.
func (c Candidate) Base() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return filepath.Base(name)
	}
	return filepath.Base(c.Path)
}

// Result carries the ordered blocking violations plus the non-blocking audio
// advisory for one candidate.
type Result struct {
	Errors       []string
	AudioWarning bool
}

// OK reports whether the candidate passed every blocking check.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Engine validates candidate files against resolved screen specs.
type Engine struct {
	prober probe.Prober
}

// NewEngine constructs a validation engine backed by the given prober.
func NewEngine(prober probe.Prober) *Engine {
	return &Engine{prober: prober}
}

// Validate checks one candidate against one spec. Format and size are checked
// first; if either fails, the engine returns immediately without probing
// media metadata and with AudioWarning unset.
func (e *Engine) Validate(ctx context.Context, candidate Candidate, spec screens.Spec) Result {
	return e.ValidateAll(ctx, candidate, []screens.Spec{spec})
}

// ValidateAll checks one candidate against several screens' specs, probing
// the file at most once. Violations accumulate across specs in order;
// duplicate messages (identical constraints on different screens) are
// reported once. The audio advisory is set when any spec disallows audio for
// a video candidate.
func (e *Engine) ValidateAll(ctx context.Context, candidate Candidate, specs []screens.Spec) Result {
	kind := probe.KindOf(candidate.Base())

	var result Result
	seen := make(map[string]struct{})
	add := func(message string) {
		if _, ok := seen[message]; ok {
			return
		}
		seen[message] = struct{}{}
		result.Errors = append(result.Errors, message)
	}

	// First pass: deterministic pre-probe checks. Specs that reject here
	// never trigger metadata checks.
	pending := make([]screens.Spec, 0, len(specs))
	for _, spec := range specs {
		failed := false
		if message, ok := checkFormat(candidate, spec); !ok {
			add(message)
			failed = true
		}
		if message, ok := checkSize(candidate, spec); !ok {
			add(message)
			failed = true
		}
		if !failed {
			pending = append(pending, spec)
		}
	}
	if len(pending) == 0 {
		return result
	}

	var meta probe.Metadata
	if needsMetadata(kind, pending) {
		meta = e.prober.Probe(ctx, candidate.Path)
	}

	for _, spec := range pending {
		for _, message := range metadataViolations(kind, meta, spec) {
			add(message)
		}
		if kind == probe.KindVideo && !spec.AudioAllowed {
			result.AudioWarning = true
		}
	}
	return result
}

func needsMetadata(kind probe.Kind, specs []screens.Spec) bool {
	if kind == probe.KindOther {
		return false
	}
	for _, spec := range specs {
		if kind == probe.KindVideo && spec.MaxDurationSec > 0 {
			return true
		}
		if spec.RequiredWidth > 0 && spec.RequiredHeight > 0 {
			return true
		}
		if spec.RequiredOrientation != "" {
			return true
		}
	}
	return false
}

func checkFormat(candidate Candidate, spec screens.Spec) (string, bool) {
	if len(spec.AllowedFormats) == 0 {
		return "", true
	}
	extension := normalizeFormat(strings.TrimPrefix(filepath.Ext(candidate.Base()), "."))
	for _, allowed := range spec.AllowedFormats {
		if normalizeFormat(allowed) == extension {
			return "", true
		}
	}
	return fmt.Sprintf("format %s is not supported (allowed: %s)",
		strings.ToUpper(strings.TrimPrefix(filepath.Ext(candidate.Base()), ".")),
		strings.Join(spec.AllowedFormats, ", ")), false
}

// normalizeFormat uppercases an extension and folds the JPEG alias onto JPG.
func normalizeFormat(extension string) string {
	upper := strings.ToUpper(strings.TrimSpace(extension))
	if upper == "JPEG" {
		return "JPG"
	}
	return upper
}

func checkSize(candidate Candidate, spec screens.Spec) (string, bool) {
	sizeMB := float64(candidate.SizeBytes) / (1024 * 1024)
	if sizeMB <= spec.MaxSizeMB {
		return "", true
	}
	return fmt.Sprintf("file size %.1f MB exceeds the %g MB limit", sizeMB, spec.MaxSizeMB), false
}

func metadataViolations(kind probe.Kind, meta probe.Metadata, spec screens.Spec) []string {
	var violations []string

	if kind == probe.KindVideo && spec.MaxDurationSec > 0 && meta.HasDuration() {
		if meta.DurationSec > spec.MaxDurationSec+durationToleranceSec {
			violations = append(violations, fmt.Sprintf("duration %.1fs exceeds the %gs limit",
				meta.DurationSec, spec.MaxDurationSec))
		}
	}

	if spec.RequiredWidth > 0 && spec.RequiredHeight > 0 && meta.HasDimensions() {
		if meta.Width != spec.RequiredWidth || meta.Height != spec.RequiredHeight {
			violations = append(violations, fmt.Sprintf("resolution %dx%d does not match required %dx%d",
				meta.Width, meta.Height, spec.RequiredWidth, spec.RequiredHeight))
		}
	}

	if spec.RequiredOrientation != "" && meta.HasDimensions() {
		measured := screens.OrientationPortrait
		if meta.Width >= meta.Height {
			measured = screens.OrientationLandscape
		}
		if measured != spec.RequiredOrientation {
			violations = append(violations, fmt.Sprintf("orientation %s (%dx%d) does not match required %s",
				measured, meta.Width, meta.Height, spec.RequiredOrientation))
		}
	}

	return violations
}
