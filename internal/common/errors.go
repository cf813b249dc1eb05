// Package common defines shared constants and sentinel errors used across
// client and server layers of NoteMarket. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Boundary validation.
	ErrValidation = errors.New("validation failed")

	// Purchase admission outcomes. They are terminal business decisions and
	// must never be retried.
	ErrListingUnavailable   = errors.New("listing is no longer available")
	ErrSelfPurchase         = errors.New("cannot purchase own listing")
	ErrAlreadyPurchased     = errors.New("listing already purchased")
	ErrDuplicateTransaction = errors.New("transaction hash already used")

	// Account errors.
	ErrUsernameTaken = errors.New("username already taken")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
