package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ================================================
// EVENT BUS
// ================================================

// Sink receives note events. Delivery is best-effort: the bus logs a
// failed delivery and moves on, it never blocks or fails the note
// operation that produced the event.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, e Event) error
}

// Bus builds event envelopes from note lifecycle callbacks and fans
// them out to the configured sinks in order. It satisfies the note
// registry's Notifier interface.
type Bus struct {
	sinks    []Sink
	channels []string
}

func NewBus(sinks ...Sink) *Bus {
	channels := make([]string, 0, len(sinks))
	for _, s := range sinks {
		channels = append(channels, s.Name())
	}
	return &Bus{sinks: sinks, channels: channels}
}

func (b *Bus) publish(e Event) {
	e.Channels = b.channels

	ctx := context.Background()
	for _, sink := range b.sinks {
		if err := sink.Deliver(ctx, e); err != nil {
			log.Warn().
				Err(err).
				Str("sink", sink.Name()).
				Str("event_type", e.Type).
				Uint64("note_id", e.NoteID).
				Msg("[EventBus] Sink delivery failed")
		}
	}
}

// ================================================
// NOTIFIER CALLBACKS
// ================================================

func (b *Bus) NoteCreated(id uint64, author uuid.UUID, content string) {
	b.publish(Event{
		ID:         uuid.New(),
		Type:       TypeNoteCreated,
		NoteID:     id,
		ActorID:    &author,
		Content:    content,
		OccurredAt: time.Now(),
	})
}

func (b *Bus) NoteUpdated(id uint64, newContent string) {
	b.publish(Event{
		ID:         uuid.New(),
		Type:       TypeNoteUpdated,
		NoteID:     id,
		Content:    newContent,
		OccurredAt: time.Now(),
	})
}

func (b *Bus) NoteDeleted(id uint64) {
	b.publish(Event{
		ID:         uuid.New(),
		Type:       TypeNoteDeleted,
		NoteID:     id,
		OccurredAt: time.Now(),
	})
}

func (b *Bus) NoteTipped(id uint64, tipper uuid.UUID, amount decimal.Decimal) {
	b.publish(Event{
		ID:         uuid.New(),
		Type:       TypeNoteTipped,
		NoteID:     id,
		ActorID:    &tipper,
		Amount:     &amount,
		OccurredAt: time.Now(),
	})
}
