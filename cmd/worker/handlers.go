package main

import (
	"github.com/hibiken/asynq"

	activityJob "noteboard-backend/internal/domains/activity/job"
	"noteboard-backend/internal/shared"
	"noteboard-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Archive handlers
	archiveEvent   *activityJob.ArchiveEventHandler
	purgeOldEvents *activityJob.PurgeOldEventsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		archiveEvent:   activityJob.NewArchiveEventHandler(c.ActivityService),
		purgeOldEvents: activityJob.NewPurgeOldEventsHandler(c.ActivityService, c.Config.Events),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Archive tasks
	mux.HandleFunc(shared.TypeArchiveEvent, h.archiveEvent.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypePurgeEvents, h.purgeOldEvents.ProcessTask)
}
