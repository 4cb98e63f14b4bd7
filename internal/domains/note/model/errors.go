package model

import "errors"

// Error codes surfaced in API responses
const (
	ErrCodeNoteNotFound   = "NOTE001"
	ErrCodeNotAuthor      = "NOTE002"
	ErrCodeNoteDeleted    = "NOTE003"
	ErrCodeInvalidInput   = "NOTE004"
	ErrCodeTransferFailed = "NOTE005"
)

// Registry-level errors
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotAuthor    = errors.New("caller is not the note author")
	ErrNoteDeleted  = errors.New("note has been deleted")
)

// Input validation errors. Both map to the InvalidInput code.
var (
	ErrEmptyContent     = errors.New("note content cannot be empty")
	ErrInvalidTipAmount = errors.New("tip amount must be greater than zero")
)

// ErrTransferFailed marks a tip whose forwarding to the author did not
// complete. The registry guarantees full rollback when it surfaces.
var ErrTransferFailed = errors.New("tip transfer failed")
