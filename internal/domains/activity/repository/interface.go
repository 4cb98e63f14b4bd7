package repository

import (
	"context"

	"noteboard-backend/internal/domains/activity/model"
)

// ActivityRepository defines data access for the note event archive.
type ActivityRepository interface {
	// Insert archives one event. Re-delivered tasks are silently
	// ignored, the event id is the idempotency key.
	Insert(ctx context.Context, e *model.ArchivedEvent) error

	ListRecent(ctx context.Context, limit int) ([]model.ArchivedEvent, error)

	// PurgeOlderThan removes events that occurred more than
	// retentionDays ago and reports how many rows went away.
	PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error)
}
