package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"noteboard-backend/internal/domains/wallet/model"
)

// WalletRepository defines wallet persistence operations
type WalletRepository interface {
	// CreateWithTx inserts a wallet inside an existing transaction,
	// used by account registration to provision atomically.
	CreateWithTx(ctx context.Context, tx pgx.Tx, w *model.Wallet) error

	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Wallet, error)

	// Credit adds amount to a wallet and returns the updated state
	Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*model.Wallet, error)

	// Transfer moves amount between two wallets in one transaction.
	// Both rows are locked; the debit and credit commit together or
	// not at all.
	Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) error
}
