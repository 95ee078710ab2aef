package ffprobe

import (
	"encoding/json"
	"testing"
)

const sampleOutput = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2}
  ],
  "format": {"filename": "promo.mp4", "nb_streams": 2, "duration": "14.980000", "size": "5242880", "format_name": "mov,mp4,m4a,3gp,3g2,mj2"}
}`

func parseSample(t *testing.T) Result {
	t.Helper()
	var result Result
	if err := json.Unmarshal([]byte(sampleOutput), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return result
}

func TestDimensions(t *testing.T) {
	result := parseSample(t)
	width, height := result.Dimensions()
	if width != 1920 || height != 1080 {
		t.Fatalf("unexpected dimensions %dx%d", width, height)
	}
}

func TestDurationSeconds(t *testing.T) {
	result := parseSample(t)
	if duration := result.DurationSeconds(); duration < 14.9 || duration > 15.0 {
		t.Fatalf("unexpected duration %f", duration)
	}
}

func TestAudioStreamCount(t *testing.T) {
	result := parseSample(t)
	if count := result.AudioStreamCount(); count != 1 {
		t.Fatalf("expected 1 audio stream, got %d", count)
	}
}

func TestDimensionsWithoutVideoStream(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(`{"streams":[],"format":{}}`), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	width, height := result.Dimensions()
	if width != 0 || height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", width, height)
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected zero duration, got %f", result.DurationSeconds())
	}
}
