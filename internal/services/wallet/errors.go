package wallet

import (
	domain "fwp/internal/errors"
	"fwp/internal/repositories"
)

// Service errors. Business errors are re-exported from the shared errors
// package so handlers can map their codes to HTTP statuses.
var (
	ErrWalletNotFound      = domain.ErrWalletNotFound
	ErrInsufficientBalance = domain.ErrInsufficientBalance
	ErrInvalidAmount       = domain.ErrInvalidAmount
	ErrWalletLocked        = domain.ErrWalletLocked
	ErrPinNotSet           = domain.ErrPinNotSet
	ErrInvalidPin          = domain.ErrInvalidPin

	ErrTransactionNotFound = repositories.ErrTransactionNotFound
)
