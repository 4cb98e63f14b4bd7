package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"noteboard-backend/internal/domains/account/model"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// CreateWithTx inserts the account inside an existing transaction so
	// that account and wallet creation commit or roll back together.
	CreateWithTx(ctx context.Context, tx pgx.Tx, a *model.Account) error

	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
