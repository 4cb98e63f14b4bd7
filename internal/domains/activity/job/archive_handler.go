package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"noteboard-backend/internal/domains/activity/service"
	"noteboard-backend/internal/events"
	"noteboard-backend/internal/shared/utils"
	"noteboard-backend/pkg/logger"
)

// ================================================
// ARCHIVE EVENT JOB HANDLER
// ================================================

// ArchiveEventHandler persists published note events into the archive.
type ArchiveEventHandler struct {
	activityService service.ActivityService
}

func NewArchiveEventHandler(activityService service.ActivityService) *ArchiveEventHandler {
	return &ArchiveEventHandler{activityService: activityService}
}

func (h *ArchiveEventHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var event events.Event
	if err := utils.UnmarshalTask(t, &event); err != nil {
		// Malformed payload, retrying reproduces the same failure
		logger.Error("Failed to unmarshal archive event payload", err)
		return asynq.SkipRetry
	}

	if err := h.activityService.Archive(ctx, event); err != nil {
		return fmt.Errorf("archive event %s: %w", event.ID, err)
	}

	logger.Debug(fmt.Sprintf("Archived event %s (%s, note %d)", event.ID, event.Type, event.NoteID))
	return nil
}
