package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"noteboard-backend/internal/domains/wallet/model"
	"noteboard-backend/pkg/database"
)

// ================================================
// WALLET REPOSITORY IMPLEMENTATION
// ================================================

type postgresWalletRepository struct {
	pool *pgxpool.Pool
}

func NewWalletRepository(pool *pgxpool.Pool) WalletRepository {
	return &postgresWalletRepository{pool: pool}
}

// CreateWithTx inserts a wallet inside an existing transaction
func (r *postgresWalletRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, w *model.Wallet) error {
	query := `
		INSERT INTO wallets (account_id, balance, status)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query, w.AccountID, w.Balance, w.Status).
		Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrWalletAlreadyExists
		}
		return fmt.Errorf("create wallet: %w", err)
	}

	return nil
}

// GetByAccountID retrieves a wallet by its owning account
func (r *postgresWalletRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Wallet, error) {
	query := `
		SELECT account_id, balance, status, created_at, updated_at
		FROM wallets
		WHERE account_id = $1
	`

	var w model.Wallet
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&w.AccountID, &w.Balance, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return &w, nil
}

// Credit adds amount to a wallet balance
func (r *postgresWalletRepository) Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*model.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE account_id = $1 AND status = 'active'
		RETURNING account_id, balance, status, created_at, updated_at
	`

	var w model.Wallet
	err := r.pool.QueryRow(ctx, query, accountID, amount).Scan(
		&w.AccountID, &w.Balance, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing row and frozen wallet are indistinguishable here;
			// resolve which one it was for a precise error.
			if _, getErr := r.GetByAccountID(ctx, accountID); getErr != nil {
				return nil, getErr
			}
			return nil, model.ErrWalletFrozen
		}
		return nil, fmt.Errorf("credit wallet: %w", err)
	}

	return &w, nil
}

// Transfer moves amount from one wallet to another atomically.
// Self-transfers are permitted: the wallet must still be active and
// cover the amount, but the balance ends where it started.
func (r *postgresWalletRepository) Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if from == to {
			w, err := lockWallet(ctx, tx, from)
			if err != nil {
				return err
			}
			if w.Status != model.WalletStatusActive {
				return model.ErrWalletFrozen
			}
			if w.Balance.LessThan(amount) {
				return model.ErrInsufficientFunds
			}
			// Net zero move; still touch the row so the activity shows
			_, err = tx.Exec(ctx, `UPDATE wallets SET updated_at = NOW() WHERE account_id = $1`, from)
			return err
		}

		// Lock both rows in a fixed order so two opposite-direction
		// transfers cannot deadlock.
		first, second := from, to
		if strings.Compare(second.String(), first.String()) < 0 {
			first, second = second, first
		}

		locked := make(map[uuid.UUID]*model.Wallet, 2)
		for _, id := range []uuid.UUID{first, second} {
			w, err := lockWallet(ctx, tx, id)
			if err != nil {
				return err
			}
			locked[id] = w
		}

		src, dst := locked[from], locked[to]
		if src.Status != model.WalletStatusActive {
			return model.ErrWalletFrozen
		}
		if !dst.CanReceive() {
			return model.ErrWalletFrozen
		}
		if src.Balance.LessThan(amount) {
			return model.ErrInsufficientFunds
		}

		if _, err := tx.Exec(ctx,
			`UPDATE wallets SET balance = balance - $2, updated_at = NOW() WHERE account_id = $1`,
			from, amount); err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE wallets SET balance = balance + $2, updated_at = NOW() WHERE account_id = $1`,
			to, amount); err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		return nil
	})
}

// lockWallet reads a wallet row under FOR UPDATE
func lockWallet(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (*model.Wallet, error) {
	query := `
		SELECT account_id, balance, status, created_at, updated_at
		FROM wallets
		WHERE account_id = $1
		FOR UPDATE
	`

	var w model.Wallet
	err := tx.QueryRow(ctx, query, accountID).Scan(
		&w.AccountID, &w.Balance, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWalletNotFound
		}
		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	return &w, nil
}
