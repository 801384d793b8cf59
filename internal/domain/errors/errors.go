package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation       = errors.New("validation failed")
	ErrPackageNotFound  = errors.New("package not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidSignature = errors.New("invalid notification signature")
	ErrConflict         = errors.New("conflict")
	ErrGateway          = errors.New("payment gateway error")
	ErrInvalidState     = errors.New("invalid order state")

	// ErrUnknownTier is a configuration error: a package id without an expiry mapping.
	ErrUnknownTier = errors.New("unknown package tier")
)
