package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Note request bodies carry no validation rules of their own. Content and
// amount rules are enforced by the registry itself so that every error,
// including its position in the check order, comes from one place.

type CreateNoteRequest struct {
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Content string `json:"content"`
}

// TipNoteRequest accepts the amount as a JSON string or number.
type TipNoteRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type CreateNoteResponse struct {
	ID uint64 `json:"id"`
}

type NoteResponse struct {
	ID        uint64          `json:"id"`
	AuthorID  uuid.UUID       `json:"author_id"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	TotalTips decimal.Decimal `json:"total_tips"`
	Deleted   bool            `json:"deleted"`
}

type OwnedNotesResponse struct {
	NoteIDs []uint64 `json:"note_ids"`
	Count   int      `json:"count"`
}

// ToNoteResponse converts a registry snapshot into the API shape
func ToNoteResponse(n Note) *NoteResponse {
	return &NoteResponse{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		TotalTips: n.TotalTips,
		Deleted:   n.Deleted,
	}
}
