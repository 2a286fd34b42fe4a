// Package settlement finalizes pending deposit and withdrawal requests.
// Approval and rejection are terminal: a request is settled exactly once, and
// every settlement commits the ledger update and the wallet mutation together.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "fwp/internal/errors"
	"fwp/internal/models"
	"fwp/internal/repositories"
)

var (
	ErrNotFound = repositories.ErrTransactionNotFound

	ErrAlreadySettled = &domain.DomainError{
		Code:    "ALREADY_SETTLED",
		Message: "transaction has already been settled",
	}
	ErrNotSettleable = &domain.DomainError{
		Code:    "NOT_SETTLEABLE",
		Message: "only deposit and withdrawal requests can be settled",
	}
)

// Query narrows and pages a pending-settlement listing
type Query struct {
	Type  string
	Limit int
	Skip  int
}

// Page is one page of pending requests, newest first
type Page struct {
	Transactions []*models.WalletTransaction `json:"transactions"`
	Total        int64                       `json:"total"`
	Limit        int                         `json:"limit"`
	Skip         int                         `json:"skip"`
	HasMore      bool                        `json:"has_more"`
}

// WalletCache is the invalidation surface the service needs after a
// settlement changes a balance.
type WalletCache interface {
	InvalidateWallet(ctx context.Context, userID uint) error
}

// Service settles pending wallet requests on behalf of an admin.
type Service interface {
	ListPending(ctx context.Context, query Query) (*Page, error)
	Approve(ctx context.Context, adminID uint, transactionID string) (*models.WalletTransaction, error)
	Reject(ctx context.Context, adminID uint, transactionID, reason string) (*models.WalletTransaction, error)
}

type service struct {
	repo  repositories.WalletRepository
	cache WalletCache
}

// NewService creates a new settlement service
func NewService(repo repositories.WalletRepository, cache WalletCache) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) ListPending(ctx context.Context, query Query) (*Page, error) {
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Skip < 0 {
		query.Skip = 0
	}

	transactions, total, err := s.repo.ListTransactions(ctx, repositories.TransactionFilter{
		Type:   query.Type,
		Status: models.TransactionStatusPending,
		Limit:  query.Limit,
		Skip:   query.Skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending settlements: %w", err)
	}

	return &Page{
		Transactions: transactions,
		Total:        total,
		Limit:        query.Limit,
		Skip:         query.Skip,
		HasMore:      int64(query.Skip+len(transactions)) < total,
	}, nil
}

// Approve finalizes a pending request. Deposits credit the wallet now;
// withdrawals were already held at request time, so only the counter moves.
func (s *service) Approve(ctx context.Context, adminID uint, transactionID string) (*models.WalletTransaction, error) {
	var entry *models.WalletTransaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		var err error
		// The row lock holds concurrent settlements of the same entry until
		// this one commits; a later attempt then sees the terminal status.
		entry, err = tx.GetTransactionByTransactionIDForUpdate(transactionID)
		if err != nil {
			return err
		}
		if entry.IsTerminal() {
			return ErrAlreadySettled
		}

		wallet, err := tx.GetByUserIDForUpdate(entry.UserID)
		if err != nil {
			return err
		}

		now := time.Now()
		switch entry.Type {
		case models.TransactionTypeDeposit:
			entry.BalanceBefore = wallet.Balance
			wallet.Balance += entry.Amount
			wallet.TotalDeposited += entry.Amount
			entry.BalanceAfter = wallet.Balance
		case models.TransactionTypeWithdrawal:
			wallet.TotalWithdrawn += entry.Amount
		default:
			return ErrNotSettleable
		}
		wallet.LastTransaction = &now

		if err := tx.Update(wallet); err != nil {
			return err
		}

		entry.Status = models.TransactionStatusCompleted
		entry.ApprovedAt = &now
		entry.ApprovedBy = &adminID
		return tx.UpdateTransaction(entry)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, entry.UserID)
	return entry, nil
}

// Reject cancels a pending request. A rejected withdrawal refunds the held
// amount in the same transaction and records a refund entry referencing the
// original request.
func (s *service) Reject(ctx context.Context, adminID uint, transactionID, reason string) (*models.WalletTransaction, error) {
	var entry *models.WalletTransaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		var err error
		entry, err = tx.GetTransactionByTransactionIDForUpdate(transactionID)
		if err != nil {
			return err
		}
		if entry.IsTerminal() {
			return ErrAlreadySettled
		}
		if entry.Type != models.TransactionTypeDeposit && entry.Type != models.TransactionTypeWithdrawal {
			return ErrNotSettleable
		}

		now := time.Now()
		if entry.Type == models.TransactionTypeWithdrawal {
			wallet, err := tx.GetByUserIDForUpdate(entry.UserID)
			if err != nil {
				return err
			}

			before := wallet.Balance
			wallet.Balance += entry.Amount
			wallet.LastTransaction = &now
			if err := tx.Update(wallet); err != nil {
				return err
			}

			refund := &models.WalletTransaction{
				WalletID:      wallet.ID,
				UserID:        entry.UserID,
				Type:          models.TransactionTypeRefund,
				Amount:        entry.Amount,
				BalanceBefore: before,
				BalanceAfter:  wallet.Balance,
				Description:   fmt.Sprintf("Refund for rejected withdrawal %s", entry.TransactionID),
				Status:        models.TransactionStatusCompleted,
				Reference:     entry.TransactionID,
			}
			if err := tx.CreateTransaction(refund); err != nil {
				return err
			}
		}

		entry.Status = models.TransactionStatusCancelled
		entry.RejectedAt = &now
		entry.RejectedBy = &adminID
		entry.RejectionReason = reason
		return tx.UpdateTransaction(entry)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, entry.UserID)
	return entry, nil
}

// IsTerminalError reports whether settlement failed because the request was
// already settled or cannot be settled at all.
func IsTerminalError(err error) bool {
	return errors.Is(err, ErrAlreadySettled) || errors.Is(err, ErrNotSettleable)
}
