package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"noteboard-backend/internal/domains/wallet/model"
	"noteboard-backend/internal/domains/wallet/repository"
	"noteboard-backend/pkg/cache"
)

// ================================================
// WALLET SERVICE
// ================================================
// Implements the synchronous value-transfer primitive the note registry
// tips through, plus wallet provisioning and the dev faucet.

// faucetWindow is the rolling window for the per-account request counter
const faucetWindow = 24 * time.Hour

// Config carries the wallet policy knobs from app config
type Config struct {
	SignupCredit  decimal.Decimal
	FaucetEnabled bool
	FaucetMax     decimal.Decimal

	// FaucetDailyRequests caps top-up requests per account per day.
	// Zero disables the counter.
	FaucetDailyRequests int
}

// WalletService defines wallet business logic operations
type WalletService interface {
	// Transfer satisfies the note registry's ledger dependency
	Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) error

	GetWallet(ctx context.Context, accountID uuid.UUID) (*model.WalletResponse, error)
	TopUp(ctx context.Context, accountID uuid.UUID, req model.TopUpRequest) (*model.WalletResponse, error)

	// ProvisionWithTx creates the account's wallet with the signup
	// credit, inside the registration transaction.
	ProvisionWithTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) error
}

type walletService struct {
	walletRepo repository.WalletRepository
	cache      cache.Cache
	cfg        Config
}

func NewWalletService(walletRepo repository.WalletRepository, cache cache.Cache, cfg Config) WalletService {
	return &walletService{
		walletRepo: walletRepo,
		cache:      cache,
		cfg:        cfg,
	}
}

func (s *walletService) Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return model.ErrInvalidAmount
	}

	return s.walletRepo.Transfer(ctx, from, to, amount)
}

func (s *walletService) GetWallet(ctx context.Context, accountID uuid.UUID) (*model.WalletResponse, error) {
	wallet, err := s.walletRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return model.ToWalletResponse(wallet), nil
}

func (s *walletService) TopUp(ctx context.Context, accountID uuid.UUID, req model.TopUpRequest) (*model.WalletResponse, error) {
	// STEP 1: faucet must be switched on for this environment
	if !s.cfg.FaucetEnabled {
		return nil, model.ErrFaucetDisabled
	}

	// STEP 2: bounds check against the configured per-request limit
	if req.Amount.Sign() <= 0 {
		return nil, model.ErrInvalidAmount
	}
	if req.Amount.GreaterThan(s.cfg.FaucetMax) {
		return nil, model.ErrFaucetLimitExceeded
	}

	// STEP 3: per-account daily request counter
	if err := s.checkFaucetAllowance(ctx, accountID); err != nil {
		return nil, err
	}

	// STEP 4: credit the wallet
	wallet, err := s.walletRepo.Credit(ctx, accountID, req.Amount)
	if err != nil {
		return nil, err
	}

	return model.ToWalletResponse(wallet), nil
}

// checkFaucetAllowance counts top-up requests per account in redis.
// The counter is advisory: if redis is unreachable the request goes
// through, matching how the rest of the app treats redis outages.
func (s *walletService) checkFaucetAllowance(ctx context.Context, accountID uuid.UUID) error {
	if s.cfg.FaucetDailyRequests <= 0 || s.cache == nil {
		return nil
	}

	key := fmt.Sprintf("faucet:requests:%s", accountID)

	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().
			Err(err).
			Str("account_id", accountID.String()).
			Msg("[Wallet] Faucet counter unavailable, allowing request")
		return nil
	}

	// First request of the window starts the expiry
	if count == 1 {
		if err := s.cache.Expire(ctx, key, faucetWindow); err != nil {
			log.Warn().
				Err(err).
				Str("account_id", accountID.String()).
				Msg("[Wallet] Failed to set faucet counter expiry")
		}
	}

	if count > int64(s.cfg.FaucetDailyRequests) {
		return model.ErrTooManyTopUps
	}
	return nil
}

func (s *walletService) ProvisionWithTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) error {
	wallet := &model.Wallet{
		AccountID: accountID,
		Balance:   s.cfg.SignupCredit,
		Status:    model.WalletStatusActive,
	}

	if err := s.walletRepo.CreateWithTx(ctx, tx, wallet); err != nil {
		return fmt.Errorf("provision wallet: %w", err)
	}

	return nil
}
