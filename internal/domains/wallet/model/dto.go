package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// TopUpRequest credits the caller's wallet from the dev faucet
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r TopUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount,
			validation.Required.Error("amount is required"),
			validation.By(positiveAmount),
		),
	)
}

func positiveAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

type WalletResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	Status    string `json:"status"`
}

// ToWalletResponse converts the entity into the API shape
func ToWalletResponse(w *Wallet) *WalletResponse {
	return &WalletResponse{
		AccountID: w.AccountID.String(),
		Balance:   w.Balance.String(),
		Status:    string(w.Status),
	}
}
