package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"noteboard-backend/internal/domains/note/model"
	"noteboard-backend/internal/domains/note/service"
	"noteboard-backend/internal/shared/middleware"
	"noteboard-backend/internal/shared/response"
	"noteboard-backend/pkg/logger"
)

// ================================================
// NOTE HANDLER
// ================================================

type NoteHandler struct {
	noteService service.NoteService
}

func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNote handles POST /notes
func (h *NoteHandler) CreateNote(c *gin.Context) {
	callerID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.noteService.CreateNote(c.Request.Context(), callerID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/notes/%d", created.ID))
	response.Success(c, http.StatusCreated, created)
}

// GetNote handles GET /notes/:id (public, deleted notes included)
func (h *NoteHandler) GetNote(c *gin.Context) {
	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), noteID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, note)
}

// UpdateNote handles PUT /notes/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	callerID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req model.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.noteService.UpdateNote(c.Request.Context(), callerID, noteID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": noteID, "message": "note updated"})
}

// DeleteNote handles DELETE /notes/:id (soft delete, the record stays readable)
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	callerID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), callerID, noteID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": noteID, "message": "note deleted"})
}

// TipNote handles POST /notes/:id/tip
func (h *NoteHandler) TipNote(c *gin.Context) {
	callerID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req model.TipNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.noteService.TipNote(c.Request.Context(), callerID, noteID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": noteID, "message": "tip delivered"})
}

// ListMyNotes handles GET /notes/mine
func (h *NoteHandler) ListMyNotes(c *gin.Context) {
	callerID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	owned, err := h.noteService.ListOwnedNoteIDs(c.Request.Context(), callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, owned)
}

// ================================================
// HELPERS
// ================================================

// handleError maps domain errors to HTTP responses
func (h *NoteHandler) handleError(c *gin.Context, err error) {
	switch {
	// 400 Bad Request - invalid input
	case errors.Is(err, model.ErrEmptyContent),
		errors.Is(err, model.ErrInvalidTipAmount):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidInput, err.Error())

	// 402 Payment Required - tip forwarding failed, state rolled back
	case errors.Is(err, model.ErrTransferFailed):
		response.ErrorResponse(c, http.StatusPaymentRequired, model.ErrCodeTransferFailed, err.Error())

	// 403 Forbidden - caller is not the author
	case errors.Is(err, model.ErrNotAuthor):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeNotAuthor, err.Error())

	// 404 Not Found
	case errors.Is(err, model.ErrNoteNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeNoteNotFound, err.Error())

	// 410 Gone - soft-deleted notes reject every mutation
	case errors.Is(err, model.ErrNoteDeleted):
		response.ErrorResponse(c, http.StatusGone, model.ErrCodeNoteDeleted, err.Error())

	default:
		logger.Error("note operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}

// parseNoteID reads the :id path param. A literal 0 parses fine and then
// fails lookup: it is the reserved does-not-exist id.
func parseNoteID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid note id")
		return 0, false
	}
	return id, true
}

func getAccountIDFromContext(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(middleware.ContextAccountIDKey)
	if !exists {
		return uuid.Nil, errors.New("account id not found in context")
	}

	accountID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid account id type in context")
	}

	return accountID, nil
}
