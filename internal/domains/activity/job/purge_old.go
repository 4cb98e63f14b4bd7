package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"noteboard-backend/internal/config"
	"noteboard-backend/internal/domains/activity/service"
	"noteboard-backend/internal/shared"
	"noteboard-backend/internal/shared/utils"
	"noteboard-backend/pkg/logger"
)

// ================================================
// PURGE OLD EVENTS JOB HANDLER
// ================================================

// PurgeOldEventsHandler trims the archive down to the retention window.
// Scheduled daily, the payload may override the configured retention.
type PurgeOldEventsHandler struct {
	activityService service.ActivityService
	eventsConfig    config.EventsConfig
}

func NewPurgeOldEventsHandler(
	activityService service.ActivityService,
	eventsConfig config.EventsConfig,
) *PurgeOldEventsHandler {
	return &PurgeOldEventsHandler{
		activityService: activityService,
		eventsConfig:    eventsConfig,
	}
}

func (h *PurgeOldEventsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.PurgeEventsPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Error("Failed to unmarshal purge payload, using configured retention", err)
	}

	days := payload.RetentionDays
	if days <= 0 {
		days = h.eventsConfig.RetentionDays
	}

	logger.Info("Starting PurgeOldEvents job", map[string]interface{}{
		"retention_days": days,
	})

	deleted, err := h.activityService.PurgeOldEvents(ctx, days)
	if err != nil {
		return fmt.Errorf("purge old events: %w", err)
	}

	logger.Info("Completed PurgeOldEvents job", map[string]interface{}{
		"retention_days": days,
		"deleted_count":  deleted,
	})

	return nil
}
