package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fwp/internal/repositories"
	"fwp/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// SetPin sets or changes the wallet PIN. Changing an existing PIN requires the
// current one. A successful change clears any lockout state.
func (s *service) SetPin(ctx context.Context, userID uint, pin, currentPin string) error {
	if err := validation.ValidatePinFormat(pin); err != nil {
		return err
	}

	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return err
	}

	if wallet.IsPinSet {
		if bcrypt.CompareHashAndPassword([]byte(wallet.PinHash), []byte(currentPin)) != nil {
			return ErrInvalidPin
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	wallet.PinHash = string(hash)
	wallet.IsPinSet = true
	wallet.FailedAttempts = 0
	wallet.IsLocked = false
	wallet.LockedUntil = nil

	if err := s.repo.Update(wallet); err != nil {
		return fmt.Errorf("failed to save PIN: %w", err)
	}

	s.cache.InvalidateWallet(ctx, userID)
	return nil
}

// VerifyPin checks the submitted PIN against the stored hash. Three
// consecutive failures lock the wallet for PinLockDuration; the lock clears by
// timestamp comparison on the next attempt. The returned PinStatus is non-nil
// alongside ErrInvalidPin and ErrWalletLocked so callers can report attempts
// left or the lock deadline.
func (s *service) VerifyPin(ctx context.Context, userID uint, pin string) (*PinStatus, error) {
	var status *PinStatus
	var verifyErr error

	// Counter updates must commit even when verification fails, so failures
	// are carried in verifyErr instead of rolling back the transaction.
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			return err
		}
		if !wallet.IsPinSet {
			return ErrPinNotSet
		}

		now := time.Now()
		if wallet.IsLocked && !wallet.LockExpired(now) {
			status = &PinStatus{LockedUntil: wallet.LockedUntil}
			verifyErr = ErrWalletLocked
			return nil
		}
		if wallet.IsLocked {
			wallet.IsLocked = false
			wallet.LockedUntil = nil
			wallet.FailedAttempts = 0
		}

		if bcrypt.CompareHashAndPassword([]byte(wallet.PinHash), []byte(pin)) != nil {
			wallet.FailedAttempts++
			if wallet.FailedAttempts >= MaxPinAttempts {
				until := now.Add(PinLockDuration)
				wallet.IsLocked = true
				wallet.LockedUntil = &until
				status = &PinStatus{LockedUntil: wallet.LockedUntil}
				verifyErr = ErrWalletLocked
			} else {
				status = &PinStatus{AttemptsLeft: MaxPinAttempts - wallet.FailedAttempts}
				verifyErr = ErrInvalidPin
			}
			return tx.Update(wallet)
		}

		wallet.FailedAttempts = 0
		if err := tx.Update(wallet); err != nil {
			return err
		}
		status = &PinStatus{Verified: true}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrPinNotSet
		}
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, userID)
	return status, verifyErr
}
