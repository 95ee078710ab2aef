package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ManifestEntry describes one expected slot assignment.
type ManifestEntry struct {
	ScreenID         string   `json:"screenId"`
	ScreenName       string   `json:"screenName"`
	SlotNumber       int      `json:"slotNumber"`
	ExpectedFilename string   `json:"expectedFilename"`
	Status           string   `json:"status"`
	AllowedFormats   []string `json:"allowedFormats,omitempty"`
	MaxSizeMB        float64  `json:"maxSizeMb,omitempty"`
	MaxDurationSec   float64  `json:"maxDurationSec,omitempty"`
}

// ManifestView is the full manifest payload.
type ManifestView struct {
	CampaignID  string          `json:"campaignId"`
	GeneratedAt string          `json:"generatedAt,omitempty"`
	Entries     []ManifestEntry `json:"entries"`
}

// AssetView describes one uploaded asset in a transport-friendly format.
type AssetView struct {
	ScreenID       string   `json:"screenId"`
	SlotNumber     int      `json:"slotNumber"`
	RemoteID       string   `json:"remoteId,omitempty"`
	Filename       string   `json:"filename"`
	SizeBytes      int64    `json:"sizeBytes"`
	URL            string   `json:"url,omitempty"`
	Status         string   `json:"status"`
	ValidationNote string   `json:"validationNote,omitempty"`
	PolicyFailures []string `json:"policyFailures,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

// QueueEntryView describes a queue entry in a transport-friendly format.
type QueueEntryView struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	SourcePath   string `json:"sourcePath"`
	SizeBytes    int64  `json:"sizeBytes"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// ReadinessView reports the aggregate readiness metrics gating workflow
// progression.
type ReadinessView struct {
	TotalSlots    int  `json:"totalSlots"`
	MappedCount   int  `json:"mappedCount"`
	UploadedCount int  `json:"uploadedCount"`
	ApprovedCount int  `json:"approvedCount"`
	Ready         bool `json:"ready"`
	Processing    bool `json:"processing"`
}
