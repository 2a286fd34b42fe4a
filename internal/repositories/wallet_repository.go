package repositories

import (
	"context"
	"errors"
	"time"

	"fwp/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
)

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	UserID uint
	Type   string
	Status string
	Limit  int
	Skip   int
}

// WalletRepository defines the interface for wallet-related database operations.
// GetByUserIDForUpdate must only be called inside ExecuteInTransaction; it takes
// the row lock that serializes concurrent mutations of one wallet.
type WalletRepository interface {
	// Core wallet operations
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)
	GetByUserIDForUpdate(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error
	List(offset, limit int) ([]*models.Wallet, int64, error)

	// Ledger operations
	CreateTransaction(tx *models.WalletTransaction) error
	GetTransactionByTransactionID(transactionID string) (*models.WalletTransaction, error)
	// GetTransactionByTransactionIDForUpdate must only be called inside
	// ExecuteInTransaction; it locks the ledger row so a pending entry can
	// be settled exactly once.
	GetTransactionByTransactionIDForUpdate(transactionID string) (*models.WalletTransaction, error)
	UpdateTransaction(tx *models.WalletTransaction) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.WalletTransaction, int64, error)

	// Atomicity boundary: wallet mutation and its ledger row commit together.
	ExecuteInTransaction(fn func(WalletRepository) error) error

	// Reporting
	GetTotalBalance() (float64, error)
	GetTransactionStats(start, end time.Time) (*TransactionStats, error)
}

// TransactionStats represents aggregated ledger statistics
type TransactionStats struct {
	TotalTransactions int64
	TotalVolume       float64
	AvgAmount         float64
	MaxAmount         float64
	MinAmount         float64
	SuccessRate       float64
}
