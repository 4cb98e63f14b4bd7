package events

import (
	"context"

	"github.com/rs/zerolog/log"
)

// logSink writes every event as a structured log record. Always on, so
// a bare deployment without Redis or a worker still surfaces the feed.
type logSink struct{}

func NewLogSink() Sink {
	return logSink{}
}

func (logSink) Name() string {
	return "log"
}

func (logSink) Deliver(ctx context.Context, e Event) error {
	evt := log.Info().
		Str("event_id", e.ID.String()).
		Str("event_type", e.Type).
		Uint64("note_id", e.NoteID)

	if e.ActorID != nil {
		evt = evt.Str("actor_id", e.ActorID.String())
	}
	if e.Amount != nil {
		evt = evt.Str("amount", e.Amount.String())
	}

	evt.Msg("[Event] " + e.Type)
	return nil
}
