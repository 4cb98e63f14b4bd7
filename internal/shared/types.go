package shared

// Asynq task types consumed by cmd/worker
const (
	TypeArchiveEvent = "events:archive"
	TypePurgeEvents  = "events:purge_old"
)

// Queue names. The events queue gets the highest weight so archive
// tasks are not starved by housekeeping.
const (
	QueueEvents  = "events"
	QueueDefault = "default"
	QueueLow     = "low"
)

// PurgeEventsPayload represents data for the archive retention task
type PurgeEventsPayload struct {
	RetentionDays int `json:"retentionDays"`
}
