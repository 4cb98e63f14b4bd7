package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for note lifecycle notifications
const (
	TypeNoteCreated = "note.created"
	TypeNoteUpdated = "note.updated"
	TypeNoteDeleted = "note.deleted"
	TypeNoteTipped  = "note.tipped"
)

// Event is the envelope delivered to every sink. ActorID and Amount are
// only set for the event types that carry them: created has the author,
// tipped has the tipper and amount, updated and deleted identify the
// note alone. Channels lists the sinks the envelope was dispatched to.
type Event struct {
	ID         uuid.UUID        `json:"id"`
	Type       string           `json:"type"`
	NoteID     uint64           `json:"note_id"`
	ActorID    *uuid.UUID       `json:"actor_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Content    string           `json:"content,omitempty"`
	Channels   []string         `json:"channels,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
