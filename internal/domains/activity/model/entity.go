package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ================================================
// ARCHIVED EVENT ENTITY
// ================================================

// ArchivedEvent is one note lifecycle event persisted by the worker.
// The typed columns make the feed queryable, Payload keeps the full
// envelope as it was published.
type ArchivedEvent struct {
	ID         uuid.UUID        `json:"id"`
	EventType  string           `json:"event_type"`
	NoteID     uint64           `json:"note_id"`
	ActorID    *uuid.UUID       `json:"actor_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Content    *string          `json:"content,omitempty"`
	Channels   []string         `json:"channels"`
	Payload    JSONB            `json:"payload,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
	ArchivedAt time.Time        `json:"archived_at"`
}

// ================================================
// JSONB TYPE (PostgreSQL JSONB support)
// ================================================

type JSONB map[string]interface{}

// Scan implements sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONB)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return ErrInvalidJSONB
	}

	result := make(JSONB)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}

	*j = result
	return nil
}

// Value implements driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}
