package model

import "errors"

// Error codes surfaced in API responses
const (
	ErrCodeWalletNotFound    = "WAL001"
	ErrCodeInsufficientFunds = "WAL002"
	ErrCodeWalletFrozen      = "WAL003"
	ErrCodeInvalidAmount     = "WAL004"
	ErrCodeFaucetDisabled    = "WAL005"
	ErrCodeTooManyTopUps     = "WAL006"
)

// Repository-level errors
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletAlreadyExists = errors.New("wallet already exists for account")
)

// Transfer errors. Any of these failing a tip surfaces to the note
// registry as a transfer failure.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrWalletFrozen      = errors.New("wallet is frozen")
)

// Faucet errors
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrFaucetDisabled      = errors.New("wallet faucet is disabled")
	ErrFaucetLimitExceeded = errors.New("amount exceeds faucet limit")
	ErrTooManyTopUps       = errors.New("too many top-up requests, please try again later")
)
