package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteboard-backend/internal/domains/note/model"
)

// ================================================
// TEST DOUBLES
// ================================================

type transferCall struct {
	from, to uuid.UUID
	amount   decimal.Decimal
}

type fakeLedger struct {
	err   error
	calls []transferCall
}

func (f *fakeLedger) Transfer(_ context.Context, from, to uuid.UUID, amount decimal.Decimal) error {
	f.calls = append(f.calls, transferCall{from: from, to: to, amount: amount})
	return f.err
}

type notedEvent struct {
	kind    string
	id      uint64
	actor   uuid.UUID
	content string
	amount  decimal.Decimal
}

type recordingNotifier struct {
	events []notedEvent
}

func (n *recordingNotifier) NoteCreated(id uint64, author uuid.UUID, content string) {
	n.events = append(n.events, notedEvent{kind: "created", id: id, actor: author, content: content})
}

func (n *recordingNotifier) NoteUpdated(id uint64, newContent string) {
	n.events = append(n.events, notedEvent{kind: "updated", id: id, content: newContent})
}

func (n *recordingNotifier) NoteDeleted(id uint64) {
	n.events = append(n.events, notedEvent{kind: "deleted", id: id})
}

func (n *recordingNotifier) NoteTipped(id uint64, tipper uuid.UUID, amount decimal.Decimal) {
	n.events = append(n.events, notedEvent{kind: "tipped", id: id, actor: tipper, amount: amount})
}

func newTestRegistry() (*Registry, *fakeLedger, *recordingNotifier) {
	ledger := &fakeLedger{}
	notifier := &recordingNotifier{}
	return New(ledger, notifier), ledger, notifier
}

var (
	t0 = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
	t2 = t0.Add(2 * time.Minute)
)

// ================================================
// CREATE
// ================================================

func TestCreateAssignsSequentialIDs(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	id1, err := reg.Create(alice, "hello", t0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id1)

	id2, err := reg.Create(alice, "world", t1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id2)
}

func TestCreateInitialState(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	id, err := reg.Create(alice, "hello", t0)
	require.NoError(t, err)

	note, err := reg.Get(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), note.ID)
	assert.Equal(t, alice, note.AuthorID)
	assert.Equal(t, "hello", note.Content)
	assert.Equal(t, t0, note.CreatedAt)
	assert.Equal(t, t0, note.UpdatedAt)
	assert.True(t, note.TotalTips.IsZero())
	assert.False(t, note.Deleted)
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	reg, _, notifier := newTestRegistry()
	alice := uuid.New()

	_, err := reg.Create(alice, "", t0)
	assert.ErrorIs(t, err, model.ErrEmptyContent)
	assert.Empty(t, notifier.events)

	// The failed create must not have consumed an id
	id, err := reg.Create(alice, "first", t0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestCreateEmitsNotification(t *testing.T) {
	reg, _, notifier := newTestRegistry()
	alice := uuid.New()

	id, err := reg.Create(alice, "hello", t0)
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notedEvent{kind: "created", id: id, actor: alice, content: "hello"}, notifier.events[0])
}

// ================================================
// UPDATE
// ================================================

func TestUpdateReplacesContentAndTimestamp(t *testing.T) {
	reg, _, notifier := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Update(id, alice, "b", t1))

	note, err := reg.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "b", note.Content)
	assert.Equal(t, t0, note.CreatedAt)
	assert.Equal(t, t1, note.UpdatedAt)

	last := notifier.events[len(notifier.events)-1]
	assert.Equal(t, notedEvent{kind: "updated", id: id, content: "b"}, last)
}

func TestUpdateByNonAuthorFails(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice, bob := uuid.New(), uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	err := reg.Update(id, bob, "b", t1)
	assert.ErrorIs(t, err, model.ErrNotAuthor)

	note, _ := reg.Get(id)
	assert.Equal(t, "a", note.Content)
	assert.Equal(t, t0, note.UpdatedAt)
}

func TestUpdateUnknownNoteFails(t *testing.T) {
	reg, _, _ := newTestRegistry()

	err := reg.Update(999, uuid.New(), "b", t0)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

func TestUpdateAfterDeleteFails(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Delete(id, alice, t1))

	err := reg.Update(id, alice, "c", t2)
	assert.ErrorIs(t, err, model.ErrNoteDeleted)

	note, _ := reg.Get(id)
	assert.Equal(t, "a", note.Content)
}

func TestUpdateRejectsEmptyContent(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	err := reg.Update(id, alice, "", t1)
	assert.ErrorIs(t, err, model.ErrEmptyContent)
}

// Authorship is checked before deletion state: a stranger poking a
// deleted note learns nothing about its state.
func TestUpdateCheckOrderAuthorshipBeforeDeletion(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice, bob := uuid.New(), uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Delete(id, alice, t1))

	err := reg.Update(id, bob, "b", t2)
	assert.ErrorIs(t, err, model.ErrNotAuthor)
}

// Deletion state is checked before input validity.
func TestUpdateCheckOrderDeletionBeforeInput(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Delete(id, alice, t1))

	err := reg.Update(id, alice, "", t2)
	assert.ErrorIs(t, err, model.ErrNoteDeleted)
}

// ================================================
// DELETE
// ================================================

func TestDeleteMarksNoteAndKeepsContent(t *testing.T) {
	reg, _, notifier := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "keep me", t0)
	require.NoError(t, reg.Delete(id, alice, t1))

	note, err := reg.Get(id)
	require.NoError(t, err)
	assert.True(t, note.Deleted)
	assert.Equal(t, "keep me", note.Content)
	assert.Equal(t, t1, note.UpdatedAt)

	last := notifier.events[len(notifier.events)-1]
	assert.Equal(t, notedEvent{kind: "deleted", id: id}, last)
}

func TestDeleteTwiceFails(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Delete(id, alice, t1))

	err := reg.Delete(id, alice, t2)
	assert.ErrorIs(t, err, model.ErrNoteDeleted)
}

func TestDeleteByNonAuthorFails(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice, bob := uuid.New(), uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	err := reg.Delete(id, bob, t1)
	assert.ErrorIs(t, err, model.ErrNotAuthor)

	note, _ := reg.Get(id)
	assert.False(t, note.Deleted)
}

func TestDeleteUnknownNoteFails(t *testing.T) {
	reg, _, _ := newTestRegistry()

	err := reg.Delete(42, uuid.New(), t0)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

// ================================================
// TIP
// ================================================

func TestTipAccumulatesAndForwards(t *testing.T) {
	reg, ledger, notifier := newTestRegistry()
	alice, bob := uuid.New(), uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Tip(context.Background(), id, bob, decimal.NewFromInt(10)))
	require.NoError(t, reg.Tip(context.Background(), id, bob, decimal.RequireFromString("2.5")))

	note, _ := reg.Get(id)
	assert.Equal(t, "12.5", note.TotalTips.String())
	// Tips do not refresh the update timestamp
	assert.Equal(t, t0, note.UpdatedAt)

	require.Len(t, ledger.calls, 2)
	assert.Equal(t, bob, ledger.calls[0].from)
	assert.Equal(t, alice, ledger.calls[0].to)
	assert.Equal(t, "10", ledger.calls[0].amount.String())

	last := notifier.events[len(notifier.events)-1]
	assert.Equal(t, "tipped", last.kind)
	assert.Equal(t, bob, last.actor)
	assert.Equal(t, "2.5", last.amount.String())
}

func TestTipRollsBackWhenTransferFails(t *testing.T) {
	reg, ledger, notifier := newTestRegistry()
	alice, bob := uuid.New(), uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Tip(context.Background(), id, bob, decimal.NewFromInt(3)))

	ledger.err = errors.New("insufficient funds")
	err := reg.Tip(context.Background(), id, bob, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, model.ErrTransferFailed)

	// The failed tip must leave the accumulated total untouched
	note, _ := reg.Get(id)
	assert.Equal(t, "3", note.TotalTips.String())

	// And no tipped notification for the failure
	tipped := 0
	for _, ev := range notifier.events {
		if ev.kind == "tipped" {
			tipped++
		}
	}
	assert.Equal(t, 1, tipped)
}

func TestTipUnknownNoteFails(t *testing.T) {
	reg, ledger, _ := newTestRegistry()

	err := reg.Tip(context.Background(), 999, uuid.New(), decimal.NewFromInt(5))
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
	assert.Empty(t, ledger.calls)
}

func TestTipDeletedNoteFails(t *testing.T) {
	reg, ledger, _ := newTestRegistry()
	alice, bob := uuid.New(), uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Delete(id, alice, t1))

	err := reg.Tip(context.Background(), id, bob, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, model.ErrNoteDeleted)
	assert.Empty(t, ledger.calls)

	note, _ := reg.Get(id)
	assert.True(t, note.TotalTips.IsZero())
}

func TestTipRejectsNonPositiveAmount(t *testing.T) {
	reg, ledger, _ := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "a", t0)

	err := reg.Tip(context.Background(), id, alice, decimal.Zero)
	assert.ErrorIs(t, err, model.ErrInvalidTipAmount)

	err = reg.Tip(context.Background(), id, alice, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, model.ErrInvalidTipAmount)

	assert.Empty(t, ledger.calls)
}

// Existence is checked before amount validity.
func TestTipCheckOrderExistenceBeforeInput(t *testing.T) {
	reg, _, _ := newTestRegistry()

	err := reg.Tip(context.Background(), 999, uuid.New(), decimal.Zero)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

func TestTipOwnNoteAllowed(t *testing.T) {
	reg, ledger, _ := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "a", t0)
	require.NoError(t, reg.Tip(context.Background(), id, alice, decimal.NewFromInt(7)))

	note, _ := reg.Get(id)
	assert.Equal(t, "7", note.TotalTips.String())

	require.Len(t, ledger.calls, 1)
	assert.Equal(t, alice, ledger.calls[0].from)
	assert.Equal(t, alice, ledger.calls[0].to)
}

// ================================================
// READ / OWNED IDS
// ================================================

func TestGetUnknownNoteFails(t *testing.T) {
	reg, _, _ := newTestRegistry()

	_, err := reg.Get(1)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)

	// id 0 is the reserved sentinel and never exists
	_, err = reg.Get(0)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

func TestGetReturnsIsolatedSnapshot(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	id, _ := reg.Create(alice, "original", t0)

	note, err := reg.Get(id)
	require.NoError(t, err)
	note.Content = "mutated copy"
	note.Deleted = true

	fresh, err := reg.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "original", fresh.Content)
	assert.False(t, fresh.Deleted)
}

func TestOwnedIDsKeepsCreationOrderIncludingDeleted(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice, bob := uuid.New(), uuid.New()

	id1, _ := reg.Create(alice, "a", t0)
	reg.Create(bob, "interleaved", t0)
	id3, _ := reg.Create(alice, "b", t1)
	require.NoError(t, reg.Delete(id1, alice, t2))

	assert.Equal(t, []uint64{id1, id3}, reg.OwnedIDs(alice))
}

func TestOwnedIDsUnknownAuthorIsEmpty(t *testing.T) {
	reg, _, _ := newTestRegistry()

	assert.Empty(t, reg.OwnedIDs(uuid.New()))
}

func TestOwnedIDsReturnsCopy(t *testing.T) {
	reg, _, _ := newTestRegistry()
	alice := uuid.New()

	reg.Create(alice, "a", t0)
	ids := reg.OwnedIDs(alice)
	ids[0] = 42

	assert.Equal(t, []uint64{1}, reg.OwnedIDs(alice))
}
