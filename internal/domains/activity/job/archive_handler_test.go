package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"noteboard-backend/internal/domains/activity/model"
	"noteboard-backend/internal/events"
	"noteboard-backend/internal/shared"
)

type fakeActivityService struct {
	archived []events.Event
	err      error
}

func (f *fakeActivityService) Archive(ctx context.Context, e events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.archived = append(f.archived, e)
	return nil
}

func (f *fakeActivityService) ListRecent(ctx context.Context, limit int) ([]model.ActivityEventResponse, error) {
	return nil, nil
}

func (f *fakeActivityService) ExportToExcel(ctx context.Context, limit int) (*excelize.File, error) {
	return nil, nil
}

func (f *fakeActivityService) PurgeOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}

func TestArchiveHandlerPersistsEvent(t *testing.T) {
	svc := &fakeActivityService{}
	handler := NewArchiveEventHandler(svc)

	event := events.Event{
		ID:         uuid.New(),
		Type:       events.TypeNoteCreated,
		NoteID:     9,
		Content:    "archived note",
		Channels:   []string{"log", "queue"},
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	task := asynq.NewTask(shared.TypeArchiveEvent, payload)
	require.NoError(t, handler.ProcessTask(context.Background(), task))

	require.Len(t, svc.archived, 1)
	require.Equal(t, event.ID, svc.archived[0].ID)
	require.Equal(t, "archived note", svc.archived[0].Content)
}

func TestArchiveHandlerSkipsMalformedPayload(t *testing.T) {
	svc := &fakeActivityService{}
	handler := NewArchiveEventHandler(svc)

	task := asynq.NewTask(shared.TypeArchiveEvent, []byte("not json"))
	err := handler.ProcessTask(context.Background(), task)

	// A broken payload is dropped, not retried.
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Empty(t, svc.archived)
}

func TestArchiveHandlerPropagatesServiceError(t *testing.T) {
	svc := &fakeActivityService{err: errors.New("db down")}
	handler := NewArchiveEventHandler(svc)

	payload, err := json.Marshal(events.Event{ID: uuid.New(), Type: events.TypeNoteDeleted, NoteID: 1})
	require.NoError(t, err)

	task := asynq.NewTask(shared.TypeArchiveEvent, payload)
	err = handler.ProcessTask(context.Background(), task)

	// Transient failures must surface so asynq retries the task.
	require.Error(t, err)
	require.NotErrorIs(t, err, asynq.SkipRetry)
}
