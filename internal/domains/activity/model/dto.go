package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivityEventResponse is the public feed representation of an
// archived event. Delivery internals (channels, raw payload) stay out.
type ActivityEventResponse struct {
	ID         uuid.UUID        `json:"id"`
	Type       string           `json:"type"`
	NoteID     uint64           `json:"note_id"`
	ActorID    *uuid.UUID       `json:"actor_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Content    *string          `json:"content,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// ToActivityEventResponse converts ArchivedEvent to ActivityEventResponse
func ToActivityEventResponse(e ArchivedEvent) ActivityEventResponse {
	return ActivityEventResponse{
		ID:         e.ID,
		Type:       e.EventType,
		NoteID:     e.NoteID,
		ActorID:    e.ActorID,
		Amount:     e.Amount,
		Content:    e.Content,
		OccurredAt: e.OccurredAt,
	}
}
