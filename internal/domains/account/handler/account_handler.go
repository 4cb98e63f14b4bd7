package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"noteboard-backend/internal/domains/account/model"
	"noteboard-backend/internal/domains/account/service"
	"noteboard-backend/internal/shared/middleware"
	"noteboard-backend/internal/shared/response"
	"noteboard-backend/pkg/logger"
)

// ================================================
// ACCOUNT HANDLER
// ================================================

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// STEP 2: VALIDATE
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err.Error())
		return
	}

	// STEP 3: REGISTER
	// Service creates the account and its wallet in one transaction.
	res, err := h.accountService.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 4: SUCCESS
	response.Success(c, http.StatusCreated, res)
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// STEP 2: VALIDATE
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err.Error())
		return
	}

	// STEP 3: AUTHENTICATE
	res, err := h.accountService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 4: SUCCESS
	response.Success(c, http.StatusOK, res)
}

// Refresh handles POST /auth/refresh
func (h *AccountHandler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err.Error())
		return
	}

	res, err := h.accountService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// ========================================
// PROFILE ENDPOINTS (PROTECTED)
// ========================================

// Me handles GET /accounts/me
func (h *AccountHandler) Me(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.accountService.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// ========================================
// HELPER FUNCTIONS
// ========================================

// handleError maps domain errors to HTTP responses
func (h *AccountHandler) handleError(c *gin.Context, err error) {
	switch {
	// 401 Unauthorized
	case errors.Is(err, model.ErrInvalidCredentials):
		response.ErrorResponse(c, http.StatusUnauthorized, model.ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, model.ErrInvalidToken):
		response.ErrorResponse(c, http.StatusUnauthorized, model.ErrCodeInvalidToken, err.Error())

	// 404 Not Found
	case errors.Is(err, model.ErrAccountNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeAccountNotFound, err.Error())

	// 409 Conflict
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeEmailAlreadyExists, err.Error())

	default:
		logger.Error("account operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
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
