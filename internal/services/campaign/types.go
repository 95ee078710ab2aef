package campaign

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"placard/internal/assets"
	"placard/internal/manifest"
	"placard/internal/screens"
)

// screenRow is one backend manifest row. The backend emits one row per slot,
// repeating the screen requirement columns on every row.
type screenRow struct {
	ScreenID         string   `json:"screen_id"`
	ScreenName       string   `json:"screen_name"`
	ScreenLocation   string   `json:"screen_location"`
	SlotNumber       int      `json:"slot_number"`
	ResolutionWidth  int      `json:"req_resolution_width"`
	ResolutionHeight int      `json:"req_resolution_height"`
	Orientation      string   `json:"req_orientation"`
	MaxFileSizeMB    float64  `json:"req_max_file_size_mb"`
	SupportedFormats []string `json:"req_supported_formats"`
	AudioSupported   bool     `json:"req_audio_supported"`
	MaxDurationSec   float64  `json:"req_max_duration_sec"`
}

// aggregateScreens folds per-slot rows into one screen record each, counting
// slots as it goes. Row order is preserved for the screen list.
func aggregateScreens(rows []screenRow) []screens.Screen {
	var (
		ordered []string
		byID    = make(map[string]*screens.Screen)
	)
	for _, row := range rows {
		id := strings.TrimSpace(row.ScreenID)
		if id == "" {
			continue
		}
		screen, ok := byID[id]
		if !ok {
			ordered = append(ordered, id)
			screen = &screens.Screen{
				ID:             id,
				Name:           strings.TrimSpace(row.ScreenName),
				Location:       strings.TrimSpace(row.ScreenLocation),
				Orientation:    normalizeOrientation(row.Orientation),
				Formats:        strings.Join(row.SupportedFormats, " / "),
				MaxSizeMB:      row.MaxFileSizeMB,
				MaxDurationSec: row.MaxDurationSec,
			}
			if row.ResolutionWidth > 0 && row.ResolutionHeight > 0 {
				screen.Resolution = fmt.Sprintf("%dx%d", row.ResolutionWidth, row.ResolutionHeight)
			}
			if row.AudioSupported {
				screen.AudioPolicy = screens.AudioAllowed
			} else {
				screen.AudioPolicy = screens.AudioNotAllowed
			}
			byID[id] = screen
		}
		screen.SlotCount++
	}

	out := make([]screens.Screen, 0, len(ordered))
	for _, id := range ordered {
		out = append(out, *byID[id])
	}
	return out
}

func normalizeOrientation(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "landscape":
		return screens.OrientationLandscape
	case "portrait":
		return screens.OrientationPortrait
	default:
		return ""
	}
}

// assetRow is one backend asset record.
type assetRow struct {
	ID               string           `json:"id"`
	ScreenID         string           `json:"screen_id"`
	SlotNumber       int              `json:"slot_number"`
	File             string           `json:"file"`
	OriginalFilename string           `json:"original_filename"`
	FileSizeBytes    int64            `json:"file_size_bytes"`
	Status           string           `json:"status"`
	ValidationStatus string           `json:"validation_status"`
	ValidationErrors validationErrors `json:"validation_errors"`
}

// validationErrors tolerates the three shapes the backend emits: a plain
// string, an array of strings, or an object with note + policy_failures.
type validationErrors struct {
	Note           string
	PolicyFailures []string
}

func (v *validationErrors) UnmarshalJSON(data []byte) error {
	*v = validationErrors{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		v.Note = strings.TrimSpace(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				v.PolicyFailures = append(v.PolicyFailures, item)
			}
		}
		return nil
	}

	var structured struct {
		Note           string   `json:"note"`
		PolicyFailures []string `json:"policy_failures"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("decode validation_errors: %w", err)
	}
	v.Note = strings.TrimSpace(structured.Note)
	for _, item := range structured.PolicyFailures {
		if item = strings.TrimSpace(item); item != "" {
			v.PolicyFailures = append(v.PolicyFailures, item)
		}
	}
	return nil
}

// toAsset converts a backend row into the local asset representation. The
// validation status, when present, supersedes the coarse lifecycle status.
func (r assetRow) toAsset(fetchedAt time.Time) (manifest.SlotKey, assets.Asset) {
	status := strings.ToLower(strings.TrimSpace(r.Status))
	if refined := strings.ToLower(strings.TrimSpace(r.ValidationStatus)); refined != "" {
		status = refined
	}
	if status == "" {
		status = assets.StatusUploaded
	}
	key := manifest.SlotKey{ScreenID: r.ScreenID, Slot: r.SlotNumber}
	return key, assets.Asset{
		RemoteID:  r.ID,
		Filename:  r.OriginalFilename,
		SizeBytes: r.FileSizeBytes,
		URL:       r.File,
		Status:    status,
		Validation: assets.Validation{
			Note:           r.ValidationErrors.Note,
			PolicyFailures: r.ValidationErrors.PolicyFailures,
		},
		UpdatedAt: fetchedAt,
	}
}

// fileGroupRow is one backend bundle file-group hint.
type fileGroupRow struct {
	Name    string `json:"name"`
	Screens []struct {
		ScreenID   string `json:"screenId"`
		ScreenName string `json:"screenName"`
		Slots      []int  `json:"slots"`
	} `json:"screens"`
}

func (r fileGroupRow) toFileGroup() manifest.FileGroup {
	group := manifest.FileGroup{Name: strings.TrimSpace(r.Name)}
	for _, screen := range r.Screens {
		group.Screens = append(group.Screens, manifest.FileGroupScreen{
			ScreenID:   strings.TrimSpace(screen.ScreenID),
			ScreenName: strings.TrimSpace(screen.ScreenName),
			Slots:      screen.Slots,
		})
	}
	return group
}
