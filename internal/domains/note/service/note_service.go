package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"noteboard-backend/internal/domains/note/model"
	"noteboard-backend/internal/domains/note/registry"
)

// ================================================
// NOTE SERVICE
// ================================================
// The service is the registry's hosting environment: it serializes all
// access behind one mutex (reads included, so no caller ever observes a
// half-applied operation) and supplies operation timestamps from a
// monotonic clock. The registry itself stays lock-free and clock-free.

// NoteService defines note business logic operations
type NoteService interface {
	CreateNote(ctx context.Context, callerID uuid.UUID, req model.CreateNoteRequest) (*model.CreateNoteResponse, error)
	UpdateNote(ctx context.Context, callerID uuid.UUID, noteID uint64, req model.UpdateNoteRequest) error
	DeleteNote(ctx context.Context, callerID uuid.UUID, noteID uint64) error
	TipNote(ctx context.Context, callerID uuid.UUID, noteID uint64, req model.TipNoteRequest) error
	GetNote(ctx context.Context, noteID uint64) (*model.NoteResponse, error)
	ListOwnedNoteIDs(ctx context.Context, callerID uuid.UUID) (*model.OwnedNotesResponse, error)
}

// Clock is the timestamp source for registry operations
type Clock interface {
	Now() time.Time
}

// monotonicClock never moves backwards, even when the wall clock does.
// Registry timestamps must be non-decreasing across operations.
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
}

func NewMonotonicClock() Clock {
	return &monotonicClock{}
}

func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.Before(c.last) {
		now = c.last
	}
	c.last = now
	return now
}

type noteService struct {
	mu    sync.Mutex
	reg   *registry.Registry
	clock Clock
}

// NewNoteService creates the service around an already-constructed registry
func NewNoteService(reg *registry.Registry, clock Clock) NoteService {
	return &noteService{
		reg:   reg,
		clock: clock,
	}
}

func (s *noteService) CreateNote(ctx context.Context, callerID uuid.UUID, req model.CreateNoteRequest) (*model.CreateNoteResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.reg.Create(callerID, req.Content, s.clock.Now())
	if err != nil {
		return nil, err
	}

	return &model.CreateNoteResponse{ID: id}, nil
}

func (s *noteService) UpdateNote(ctx context.Context, callerID uuid.UUID, noteID uint64, req model.UpdateNoteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reg.Update(noteID, callerID, req.Content, s.clock.Now())
}

func (s *noteService) DeleteNote(ctx context.Context, callerID uuid.UUID, noteID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reg.Delete(noteID, callerID, s.clock.Now())
}

// TipNote runs the wallet transfer synchronously under the serialization
// lock. That is the contract: the tip either completes fully, funds moved
// and total accumulated, or rolls back fully before the next operation
// runs.
func (s *noteService) TipNote(ctx context.Context, callerID uuid.UUID, noteID uint64, req model.TipNoteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reg.Tip(ctx, noteID, callerID, req.Amount)
}

func (s *noteService) GetNote(ctx context.Context, noteID uint64) (*model.NoteResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.reg.Get(noteID)
	if err != nil {
		return nil, err
	}

	return model.ToNoteResponse(note), nil
}

func (s *noteService) ListOwnedNoteIDs(ctx context.Context, callerID uuid.UUID) (*model.OwnedNotesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.reg.OwnedIDs(callerID)
	return &model.OwnedNotesResponse{
		NoteIDs: ids,
		Count:   len(ids),
	}, nil
}
