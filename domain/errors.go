package domain

import "errors"

var (
	ErrUnexpectedDatabase = errors.New("database-error")
	ErrDuplicateUsername  = errors.New("duplicate-username")
	ErrUserNotFound       = errors.New("user-not-found")
)

var ErrHashing = errors.New("hashing-error")

var (
	ErrUnexpectedTokenGeneration   = errors.New("token-generation-error")
	ErrUnexpectedTokenVerification = errors.New("token-verification-error")
	ErrInvalidSigningAlg           = errors.New("invalid-signing-method")
	ErrExpiredToken                = errors.New("expired-token")
	ErrInvalidTokenSignature       = errors.New("invalid-token-signature")
	ErrCorruptedToken              = errors.New("corrupted-token")
)
