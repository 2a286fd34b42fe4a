package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fwp/internal/models"
	"fwp/internal/repositories"
	"fwp/internal/validation"

	domain "fwp/internal/errors"

	"github.com/google/uuid"
)

// AddFunds credits the wallet immediately, recording a completed deposit
// entry. Settlement calls this when an admin approves a deposit request.
func (s *service) AddFunds(ctx context.Context, userID uint, amount float64, description string) (*models.WalletTransaction, error) {
	return s.credit(ctx, userID, amount, description, models.TransactionTypeDeposit)
}

// AddEarnings credits platform earnings, recorded under the earning type.
func (s *service) AddEarnings(ctx context.Context, userID uint, amount float64, description string) (*models.WalletTransaction, error) {
	return s.credit(ctx, userID, amount, description, models.TransactionTypeEarning)
}

func (s *service) credit(ctx context.Context, userID uint, amount float64, description, txType string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// Provision the wallet outside the locked section so the FOR UPDATE read
	// below always has a row to lock.
	if _, err := s.GetOrCreateWallet(ctx, userID); err != nil {
		return nil, err
	}

	var entry *models.WalletTransaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			return err
		}

		before := wallet.Balance
		wallet.Balance += amount
		switch txType {
		case models.TransactionTypeEarning:
			wallet.TotalEarned += amount
		default:
			wallet.TotalDeposited += amount
		}
		now := time.Now()
		wallet.LastTransaction = &now

		if err := tx.Update(wallet); err != nil {
			return err
		}

		entry = &models.WalletTransaction{
			WalletID:      wallet.ID,
			UserID:        userID,
			Type:          txType,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  wallet.Balance,
			Description:   description,
			Status:        models.TransactionStatusCompleted,
		}
		return tx.CreateTransaction(entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	s.cache.InvalidateWallet(ctx, userID)
	return entry, nil
}

// WithdrawFunds debits the wallet immediately, recording a completed
// withdrawal entry. It fails before any mutation if the balance is short.
func (s *service) WithdrawFunds(ctx context.Context, userID uint, amount float64, description string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var entry *models.WalletTransaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			return err
		}
		if wallet.Balance < amount {
			return ErrInsufficientBalance
		}

		before := wallet.Balance
		wallet.Balance -= amount
		wallet.TotalWithdrawn += amount
		now := time.Now()
		wallet.LastTransaction = &now

		if err := tx.Update(wallet); err != nil {
			return err
		}

		entry = &models.WalletTransaction{
			WalletID:      wallet.ID,
			UserID:        userID,
			Type:          models.TransactionTypeWithdrawal,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  wallet.Balance,
			Description:   description,
			Status:        models.TransactionStatusCompleted,
		}
		return tx.CreateTransaction(entry)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, userID)
	return entry, nil
}

// RequestDeposit records a pending deposit entry. The balance does not move
// until an admin approves the request.
func (s *service) RequestDeposit(ctx context.Context, userID uint, params DepositParams) (*models.WalletTransaction, error) {
	if err := validation.ValidateDepositRequest(params.Amount, params.PaymentMethod, params.PaymentAccount); err != nil {
		return nil, err
	}

	account := params.PaymentAccount
	if params.PaymentMethod == models.PaymentMethodCard {
		token, err := s.cards.Tokenize(params.PaymentAccount)
		if err != nil {
			return nil, &domain.DomainError{
				Code:    "INVALID_CARD",
				Message: err.Error(),
			}
		}
		account = token
	}

	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	reference := params.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	entry := &models.WalletTransaction{
		WalletID:       wallet.ID,
		UserID:         userID,
		Type:           models.TransactionTypeDeposit,
		Amount:         params.Amount,
		BalanceBefore:  wallet.Balance,
		BalanceAfter:   wallet.Balance,
		Description:    fmt.Sprintf("Deposit via %s", params.PaymentMethod),
		Status:         models.TransactionStatusPending,
		PaymentMethod:  params.PaymentMethod,
		PaymentAccount: account,
		Reference:      reference,
	}
	if err := s.repo.CreateTransaction(entry); err != nil {
		return nil, fmt.Errorf("failed to record deposit request: %w", err)
	}

	return entry, nil
}

// RequestWithdrawal holds the amount immediately and records a pending
// withdrawal entry. The hold is refunded if an admin rejects the request.
func (s *service) RequestWithdrawal(ctx context.Context, userID uint, params WithdrawalParams) (*models.WalletTransaction, error) {
	if err := validation.ValidateWithdrawalRequest(params.Amount, params.WithdrawalMethod, params.WithdrawalAccount); err != nil {
		return nil, err
	}

	if _, err := s.GetOrCreateWallet(ctx, userID); err != nil {
		return nil, err
	}

	var entry *models.WalletTransaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			return err
		}
		if wallet.IsLocked && !wallet.LockExpired(time.Now()) {
			return ErrWalletLocked
		}
		if wallet.Balance < params.Amount {
			return ErrInsufficientBalance
		}

		before := wallet.Balance
		wallet.Balance -= params.Amount
		now := time.Now()
		wallet.LastTransaction = &now

		if err := tx.Update(wallet); err != nil {
			return err
		}

		// TotalWithdrawn is bumped at settlement, once the payout is final.
		entry = &models.WalletTransaction{
			WalletID:       wallet.ID,
			UserID:         userID,
			Type:           models.TransactionTypeWithdrawal,
			Amount:         params.Amount,
			BalanceBefore:  before,
			BalanceAfter:   wallet.Balance,
			Description:    fmt.Sprintf("Withdrawal to %s", params.WithdrawalMethod),
			Status:         models.TransactionStatusPending,
			PaymentMethod:  params.WithdrawalMethod,
			PaymentAccount: params.WithdrawalAccount,
		}
		return tx.CreateTransaction(entry)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, userID)
	return entry, nil
}
