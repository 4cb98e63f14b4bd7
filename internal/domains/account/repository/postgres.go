package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"noteboard-backend/internal/domains/account/model"
)

// ================================================
// POSTGRES ACCOUNT REPOSITORY
// ================================================

type postgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &postgresAccountRepository{pool: pool}
}

// CreateWithTx inserts a new account row inside the caller's transaction.
func (r *postgresAccountRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, a *model.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, display_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		a.ID,
		a.Email,
		a.PasswordHash,
		a.DisplayName,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		// 23505 = unique_violation (email already registered)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

// GetByEmail looks up an account by email (used for login).
func (r *postgresAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`

	var a model.Account
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.DisplayName,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	return &a, nil
}

// GetByID looks up an account by its UUID.
func (r *postgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var a model.Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.DisplayName,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return &a, nil
}

// ExistsByEmail checks email uniqueness before hashing the password.
// EXISTS returns as soon as one row matches.
func (r *postgresAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}

	return exists, nil
}
