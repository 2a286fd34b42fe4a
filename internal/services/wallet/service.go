package wallet

import (
	"context"
	"errors"
	"fmt"

	"fwp/internal/models"
	"fwp/internal/repositories"
	"fwp/internal/validation"
)

type service struct {
	repo  repositories.WalletRepository
	cache WalletCache
	cards CardTokenizer
}

// NewService creates a new wallet service
func NewService(repo repositories.WalletRepository, cache WalletCache, cards CardTokenizer) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if cards == nil {
		panic("card tokenizer is required")
	}

	return &service{
		repo:  repo,
		cache: cache,
		cards: cards,
	}
}

// GetOrCreateWallet returns the user's wallet, creating a zero-balance one on
// first access. Reads go through the cache; the database stays authoritative.
func (s *service) GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
		return wallet, nil
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, fmt.Errorf("failed to get wallet: %w", err)
		}

		wallet = &models.Wallet{
			UserID:           userID,
			Currency:         models.CurrencyBDT,
			WithdrawalMethod: models.WithdrawalMethodNone,
		}
		if err := s.repo.Create(wallet); err != nil {
			// Lost a create race with a concurrent first access.
			if errors.Is(err, repositories.ErrDuplicateWallet) {
				return s.repo.GetByUserID(userID)
			}
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}
	}

	s.cache.CacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) GetTransactions(ctx context.Context, userID uint, query TransactionQuery) (*TransactionPage, error) {
	if query.Limit <= 0 {
		query.Limit = DefaultPageLimit
	}
	if query.Limit > MaxPageLimit {
		query.Limit = MaxPageLimit
	}
	if query.Skip < 0 {
		query.Skip = 0
	}

	transactions, total, err := s.repo.ListTransactions(ctx, repositories.TransactionFilter{
		UserID: userID,
		Type:   query.Type,
		Status: query.Status,
		Limit:  query.Limit,
		Skip:   query.Skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &TransactionPage{
		Transactions: transactions,
		Total:        total,
		Limit:        query.Limit,
		Skip:         query.Skip,
		HasMore:      int64(query.Skip+len(transactions)) < total,
	}, nil
}

func (s *service) GetTransaction(ctx context.Context, userID uint, transactionID string) (*models.WalletTransaction, error) {
	entry, err := s.repo.GetTransactionByTransactionID(transactionID)
	if err != nil {
		return nil, err
	}
	// Other users' entries look like missing entries.
	if entry.UserID != userID {
		return nil, ErrTransactionNotFound
	}
	return entry, nil
}

func (s *service) UpdateWithdrawalMethod(ctx context.Context, userID uint, method, account string) (*models.Wallet, error) {
	if err := validation.ValidateWithdrawalDetails(method, account); err != nil {
		return nil, err
	}

	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	wallet.WithdrawalMethod = method
	wallet.WithdrawalAccount = account
	if err := s.repo.Update(wallet); err != nil {
		return nil, fmt.Errorf("failed to update withdrawal method: %w", err)
	}

	s.cache.InvalidateWallet(ctx, userID)
	return wallet, nil
}
