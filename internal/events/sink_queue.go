package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"noteboard-backend/internal/shared"
)

// queueSink enqueues each event as an archive task for the worker to
// persist into the activity archive.
type queueSink struct {
	client *asynq.Client
}

func NewQueueSink(client *asynq.Client) Sink {
	return &queueSink{client: client}
}

func (s *queueSink) Name() string {
	return "queue"
}

func (s *queueSink) Deliver(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	task := asynq.NewTask(shared.TypeArchiveEvent, payload)
	_, err = s.client.EnqueueContext(
		ctx,
		task,
		asynq.Queue(shared.QueueEvents),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	return err
}
