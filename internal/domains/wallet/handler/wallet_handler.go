package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"noteboard-backend/internal/domains/wallet/model"
	"noteboard-backend/internal/domains/wallet/service"
	"noteboard-backend/internal/shared/middleware"
	"noteboard-backend/internal/shared/response"
	"noteboard-backend/pkg/logger"
)

// ================================================
// WALLET HANDLER
// ================================================

type WalletHandler struct {
	walletService service.WalletService
}

func NewWalletHandler(walletService service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet handles GET /wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	wallet, err := h.walletService.GetWallet(c.Request.Context(), accountID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, wallet)
}

// TopUp handles POST /wallet/topup (dev faucet)
func (h *WalletHandler) TopUp(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidAmount, "validation failed", err.Error())
		return
	}

	wallet, err := h.walletService.TopUp(c.Request.Context(), accountID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, wallet)
}

// handleError maps domain errors to HTTP responses
func (h *WalletHandler) handleError(c *gin.Context, err error) {
	switch {
	// 400 Bad Request
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrFaucetLimitExceeded):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidAmount, err.Error())

	// 402 Payment Required
	case errors.Is(err, model.ErrInsufficientFunds):
		response.ErrorResponse(c, http.StatusPaymentRequired, model.ErrCodeInsufficientFunds, err.Error())

	// 403 Forbidden
	case errors.Is(err, model.ErrFaucetDisabled):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeFaucetDisabled, err.Error())
	case errors.Is(err, model.ErrWalletFrozen):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeWalletFrozen, err.Error())

	// 404 Not Found
	case errors.Is(err, model.ErrWalletNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeWalletNotFound, err.Error())

	// 429 Too Many Requests - rate limiting
	case errors.Is(err, model.ErrTooManyTopUps):
		response.ErrorResponse(c, http.StatusTooManyRequests, model.ErrCodeTooManyTopUps, err.Error())

	default:
		logger.Error("wallet operation failed", err)
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
