package probe

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"placard/internal/logging"
	"placard/internal/media/ffprobe"
)

// Kind classifies a candidate file by its container extension.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
	KindOther Kind = "other"
)

var videoExtensions = map[string]struct{}{
	"mp4": {}, "mov": {}, "m4v": {}, "avi": {}, "mkv": {}, "webm": {}, "mpg": {}, "mpeg": {},
}

var imageExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "webp": {},
}

// KindOf classifies a filename as video, image, or other.
func KindOf(name string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	return KindOther
}

// Metadata carries the technical properties extracted from a media file.
// Zero fields mean the property could not be measured; downstream checks
// that depend on a missing property are skipped, not failed.
type Metadata struct {
	DurationSec float64
	Width       int
	Height      int
}

// HasDimensions reports whether pixel dimensions were measured.
func (m Metadata) HasDimensions() bool {
	return m.Width > 0 && m.Height > 0
}

// HasDuration reports whether a playback duration was measured.
func (m Metadata) HasDuration() bool {
	return m.DurationSec > 0
}

// Prober extracts technical metadata from a media file.
type Prober interface {
	Probe(ctx context.Context, path string) Metadata
}

// FFprobe extracts metadata by reading container headers with ffprobe.
// Probe never fails: any inspection error degrades to empty metadata so
// metadata-dependent checks are disabled rather than blocking the upload.
type FFprobe struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewFFprobe constructs an ffprobe-backed prober. An empty binary falls back
// to "ffprobe" on PATH; a non-positive timeout disables the per-probe deadline.
func NewFFprobe(binary string, timeout time.Duration, logger *slog.Logger) *FFprobe {
	return &FFprobe{
		binary:  binary,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "probe"),
	}
}

// Probe measures duration and pixel dimensions for video files and pixel
// dimensions for images. Files of any other kind yield empty metadata.
func (p *FFprobe) Probe(ctx context.Context, path string) Metadata {
	kind := KindOf(path)
	if kind == KindOther {
		return Metadata{}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	result, err := ffprobe.Inspect(ctx, p.binary, path)
	if err != nil {
		p.logger.Debug("media inspection failed; metadata checks disabled for this file",
			logging.String(logging.FieldFilename, filepath.Base(path)),
			logging.Error(err),
		)
		return Metadata{}
	}

	meta := Metadata{}
	meta.Width, meta.Height = result.Dimensions()
	if kind == KindVideo {
		meta.DurationSec = result.DurationSeconds()
	}
	return meta
}
