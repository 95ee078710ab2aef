package logging

// Standardized attribute keys used across the pipeline.
const (
	FieldComponent  = "component"
	FieldEventType  = "event_type"
	FieldErrorHint  = "error_hint"
	FieldCampaignID = "campaign_id"
	FieldScreenID   = "screen_id"
	FieldScreenName = "screen_name"
	FieldSlot       = "slot"
	FieldEntryID    = "entry_id"
	FieldFilename   = "filename"
	FieldAttemptID  = "attempt_id"
)
