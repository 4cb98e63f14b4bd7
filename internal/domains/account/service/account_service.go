package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"noteboard-backend/internal/domains/account/model"
	"noteboard-backend/internal/domains/account/repository"
	"noteboard-backend/pkg/database"
	"noteboard-backend/pkg/jwt"
)

// bcryptCost balances hashing time against brute-force resistance.
const bcryptCost = 12

// WalletProvisioner creates the wallet for a new account inside the
// registration transaction. Satisfied by the wallet service.
type WalletProvisioner interface {
	ProvisionWithTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) error
}

// AccountService defines authentication and profile business logic.
type AccountService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*model.AccountResponse, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
	wallets     WalletProvisioner
	pool        *pgxpool.Pool
	jwtManager  *jwt.Manager
}

func NewAccountService(
	accountRepo repository.AccountRepository,
	wallets WalletProvisioner,
	pool *pgxpool.Pool,
	jwtManager *jwt.Manager,
) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		wallets:     wallets,
		pool:        pool,
		jwtManager:  jwtManager,
	}
}

// ================================================
// AUTHENTICATION
// ================================================

// Register creates a new account and its wallet in one transaction.
func (s *accountService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	// STEP 1: CHECK EMAIL NOT TAKEN
	// Cheap pre-check before the expensive bcrypt hash. The unique
	// constraint still catches races at insert time.
	exists, err := s.accountRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	// STEP 2: HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// STEP 3: BUILD ACCOUNT ENTITY
	now := time.Now()
	account := &model.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		DisplayName:  req.DisplayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// STEP 4: PERSIST ACCOUNT + WALLET ATOMICALLY
	// An account without a wallet cannot receive tips, so both rows
	// commit together or not at all.
	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.accountRepo.CreateWithTx(ctx, tx, account); err != nil {
			return err
		}
		return s.wallets.ProvisionWithTx(ctx, tx, account.ID)
	})
	if err != nil {
		return nil, err
	}

	// STEP 5: ISSUE TOKEN PAIR
	return s.issueTokens(account)
}

// Login verifies credentials and returns a fresh token pair.
func (s *accountService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	// STEP 1: FIND ACCOUNT BY EMAIL
	// Unknown email and wrong password both map to the same error so
	// callers cannot probe which emails are registered.
	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	// STEP 2: VERIFY PASSWORD
	// bcrypt comparison is constant-time.
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	// STEP 3: ISSUE TOKEN PAIR
	return s.issueTokens(account)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error) {
	// STEP 1: VALIDATE REFRESH TOKEN
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	// STEP 2: CONFIRM ACCOUNT STILL EXISTS
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	// STEP 3: ISSUE NEW TOKEN PAIR
	return s.issueTokens(account)
}

// ================================================
// PROFILE
// ================================================

func (s *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*model.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := model.ToAccountResponse(account)
	return &resp, nil
}

// ================================================
// HELPERS
// ================================================

func (s *accountService) issueTokens(account *model.Account) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID.String(), account.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessTTL()),
		Account:      model.ToAccountResponse(account),
	}, nil
}
