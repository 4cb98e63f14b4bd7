package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"noteboard-backend/internal/config"
	"noteboard-backend/internal/shared"
	"noteboard-backend/pkg/logger"
)

type Scheduler struct {
	scheduler    *asynq.Scheduler
	eventsConfig config.EventsConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, eventsConfig config.EventsConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:    scheduler,
		eventsConfig: eventsConfig,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerPurgeOldEventsJob(); err != nil {
		return err
	}

	return nil
}

// ================================================
// JOB 1: Purge Old Archived Events (Daily at 4 AM)
// ================================================
// Runs during low traffic. The retention window comes from config and
// rides along in the payload so the handler does not need config access.
func (s *Scheduler) registerPurgeOldEventsJob() error {
	payload, err := json.Marshal(shared.PurgeEventsPayload{
		RetentionDays: s.eventsConfig.RetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeEvents, payload)

	_, err = s.scheduler.Register(
		"0 4 * * *", // Daily at 4 AM
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PurgeOldEvents job", err)
		return err
	}

	logger.Info("Registered PurgeOldEvents: daily at 4 AM", map[string]interface{}{
		"retention_days": s.eventsConfig.RetentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
