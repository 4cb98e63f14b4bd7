package model

import "errors"

// Error codes surfaced in API responses
const (
	ErrCodeAccountNotFound    = "ACC001"
	ErrCodeEmailAlreadyExists = "ACC002"
	ErrCodeInvalidCredentials = "ACC003"
	ErrCodeInvalidToken       = "ACC004"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
