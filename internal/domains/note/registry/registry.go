package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"noteboard-backend/internal/domains/note/model"
)

// ================================================
// NOTE REGISTRY
// ================================================
// The registry owns all note state and is a strictly sequential state
// machine: every operation runs to completion against one consistent
// snapshot before the next begins. It takes no locks of its own; the
// note service serializes all access. Collaborators are injected and
// never called back into.

// Ledger is the synchronous value-transfer primitive. Transfer must
// report success or failure before it returns; there is no retry and
// no queuing behind it.
type Ledger interface {
	Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) error
}

// Notifier receives fire-and-forget notifications about successful
// operations. Implementations must never fail the calling operation.
type Notifier interface {
	NoteCreated(id uint64, author uuid.UUID, content string)
	NoteUpdated(id uint64, newContent string)
	NoteDeleted(id uint64)
	NoteTipped(id uint64, tipper uuid.UUID, amount decimal.Decimal)
}

// Registry holds the three pieces of registry state. Notes are created
// once and mutated in place, never removed; per-author id lists are
// append-only in creation order and keep ids of deleted notes.
type Registry struct {
	nextID      uint64
	notes       map[uint64]*model.Note
	idsByAuthor map[uuid.UUID][]uint64

	ledger   Ledger
	notifier Notifier
}

// New constructs an empty registry. nextID starts at 1: id 0 is the
// reserved "does not exist" sentinel and must never be allocated.
func New(ledger Ledger, notifier Notifier) *Registry {
	return &Registry{
		nextID:      1,
		notes:       make(map[uint64]*model.Note),
		idsByAuthor: make(map[uuid.UUID][]uint64),
		ledger:      ledger,
		notifier:    notifier,
	}
}

// Create stores a new active note owned by caller and returns its id.
// Content is validated before the id allocation so a failed create
// consumes no id (ids stay gap-free across successful creates).
func (r *Registry) Create(caller uuid.UUID, content string, now time.Time) (uint64, error) {
	if len(content) == 0 {
		return 0, model.ErrEmptyContent
	}

	id := r.nextID
	r.nextID++

	r.notes[id] = &model.Note{
		ID:        id,
		AuthorID:  caller,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		TotalTips: decimal.Zero,
		Deleted:   false,
	}
	r.idsByAuthor[caller] = append(r.idsByAuthor[caller], id)

	r.notifier.NoteCreated(id, caller, content)
	return id, nil
}

// Update replaces the content of an active note owned by caller.
// Checks run in a fixed order: existence, authorship, deletion state,
// input validity. The same order applies to Delete and Tip.
func (r *Registry) Update(id uint64, caller uuid.UUID, newContent string, now time.Time) error {
	note, ok := r.notes[id]
	if !ok {
		return model.ErrNoteNotFound
	}
	if note.AuthorID != caller {
		return model.ErrNotAuthor
	}
	if note.Deleted {
		return model.ErrNoteDeleted
	}
	if len(newContent) == 0 {
		return model.ErrEmptyContent
	}

	note.Content = newContent
	note.UpdatedAt = now

	r.notifier.NoteUpdated(id, newContent)
	return nil
}

// Delete soft-deletes a note: the record stays readable with its last
// content, but no mutation ever succeeds on it again.
func (r *Registry) Delete(id uint64, caller uuid.UUID, now time.Time) error {
	note, ok := r.notes[id]
	if !ok {
		return model.ErrNoteNotFound
	}
	if note.AuthorID != caller {
		return model.ErrNotAuthor
	}
	if note.Deleted {
		return model.ErrNoteDeleted
	}

	note.Deleted = true
	note.UpdatedAt = now

	r.notifier.NoteDeleted(id)
	return nil
}

// Tip accumulates amount on the note and forwards it to the author.
// Tipping your own note is allowed.
func (r *Registry) Tip(ctx context.Context, id uint64, tipper uuid.UUID, amount decimal.Decimal) error {
	note, ok := r.notes[id]
	if !ok {
		return model.ErrNoteNotFound
	}
	if note.Deleted {
		return model.ErrNoteDeleted
	}
	if amount.Sign() <= 0 {
		return model.ErrInvalidTipAmount
	}

	// STEP 1: accumulate before attempting the transfer
	note.TotalTips = note.TotalTips.Add(amount)

	// STEP 2: forward the amount to the author, synchronously
	if err := r.ledger.Transfer(ctx, tipper, note.AuthorID, amount); err != nil {
		// STEP 3: transfer failed, revert the accumulation. The total
		// must never include funds that did not arrive.
		note.TotalTips = note.TotalTips.Sub(amount)
		return fmt.Errorf("%w: %v", model.ErrTransferFailed, err)
	}

	r.notifier.NoteTipped(id, tipper, amount)
	return nil
}

// Get returns a snapshot of the note, deleted or not. The copy keeps
// callers away from registry-owned state.
func (r *Registry) Get(id uint64) (model.Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return model.Note{}, model.ErrNoteNotFound
	}
	return *note, nil
}

// OwnedIDs returns every id the author has ever created, in creation
// order, including ids of soft-deleted notes. Unknown authors get an
// empty slice, not an error.
func (r *Registry) OwnedIDs(author uuid.UUID) []uint64 {
	ids := r.idsByAuthor[author]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}
