package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Note is the sole registry entity. A note starts active, may be edited
// by its author any number of times, and ends as a soft-deleted record
// that is kept forever but never mutated again.
//
// ID 0 is reserved to mean "does not exist" and is never assigned.
type Note struct {
	ID        uint64          `json:"id"`
	AuthorID  uuid.UUID       `json:"author_id"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	TotalTips decimal.Decimal `json:"total_tips"`
	Deleted   bool            `json:"deleted"`
}
