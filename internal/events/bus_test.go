package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// recordingSink captures every delivered envelope.
type recordingSink struct {
	name   string
	events []Event
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(ctx context.Context, e Event) error {
	s.events = append(s.events, e)
	return nil
}

// failingSink always rejects delivery.
type failingSink struct{}

func (failingSink) Name() string { return "broken" }

func (failingSink) Deliver(ctx context.Context, e Event) error {
	return errors.New("sink unavailable")
}

func TestBusFansOutToAllSinks(t *testing.T) {
	first := &recordingSink{name: "first"}
	second := &recordingSink{name: "second"}
	bus := NewBus(first, second)

	author := uuid.New()
	bus.NoteCreated(7, author, "hello")

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)

	e := first.events[0]
	require.Equal(t, TypeNoteCreated, e.Type)
	require.Equal(t, uint64(7), e.NoteID)
	require.NotNil(t, e.ActorID)
	require.Equal(t, author, *e.ActorID)
	require.Equal(t, "hello", e.Content)
	require.Equal(t, []string{"first", "second"}, e.Channels)
	require.False(t, e.OccurredAt.IsZero())

	// Both sinks see the same envelope.
	require.Equal(t, e.ID, second.events[0].ID)
}

func TestBusSwallowsSinkErrors(t *testing.T) {
	healthy := &recordingSink{name: "healthy"}
	bus := NewBus(failingSink{}, healthy)

	// A broken sink must not stop delivery to the ones after it.
	bus.NoteTipped(3, uuid.New(), decimal.RequireFromString("2.5"))

	require.Len(t, healthy.events, 1)
	require.Equal(t, TypeNoteTipped, healthy.events[0].Type)
}

func TestEnvelopeFieldsPerEventType(t *testing.T) {
	sink := &recordingSink{name: "only"}
	bus := NewBus(sink)

	tipper := uuid.New()
	bus.NoteUpdated(1, "edited")
	bus.NoteDeleted(1)
	bus.NoteTipped(1, tipper, decimal.NewFromInt(10))

	require.Len(t, sink.events, 3)

	updated := sink.events[0]
	require.Equal(t, TypeNoteUpdated, updated.Type)
	require.Nil(t, updated.ActorID)
	require.Nil(t, updated.Amount)
	require.Equal(t, "edited", updated.Content)

	deleted := sink.events[1]
	require.Equal(t, TypeNoteDeleted, deleted.Type)
	require.Nil(t, deleted.ActorID)
	require.Nil(t, deleted.Amount)
	require.Empty(t, deleted.Content)

	tipped := sink.events[2]
	require.Equal(t, TypeNoteTipped, tipped.Type)
	require.Equal(t, tipper, *tipped.ActorID)
	require.True(t, tipped.Amount.Equal(decimal.NewFromInt(10)))

	// Every publish mints a fresh event id.
	require.NotEqual(t, updated.ID, deleted.ID)
	require.NotEqual(t, deleted.ID, tipped.ID)
}

func TestLogSinkNeverFails(t *testing.T) {
	sink := NewLogSink()
	err := sink.Deliver(context.Background(), Event{
		ID:     uuid.New(),
		Type:   TypeNoteCreated,
		NoteID: 1,
	})
	require.NoError(t, err)
}
