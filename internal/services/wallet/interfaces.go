package wallet

import (
	"context"

	"fwp/internal/models"
)

// Service defines the main wallet service interface
type Service interface {
	// Core wallet operations
	GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	AddFunds(ctx context.Context, userID uint, amount float64, description string) (*models.WalletTransaction, error)
	WithdrawFunds(ctx context.Context, userID uint, amount float64, description string) (*models.WalletTransaction, error)
	AddEarnings(ctx context.Context, userID uint, amount float64, description string) (*models.WalletTransaction, error)

	// Request workflow (settled later by an admin)
	RequestDeposit(ctx context.Context, userID uint, params DepositParams) (*models.WalletTransaction, error)
	RequestWithdrawal(ctx context.Context, userID uint, params WithdrawalParams) (*models.WalletTransaction, error)

	// History
	GetTransactions(ctx context.Context, userID uint, query TransactionQuery) (*TransactionPage, error)
	GetTransaction(ctx context.Context, userID uint, transactionID string) (*models.WalletTransaction, error)

	// Settings
	UpdateWithdrawalMethod(ctx context.Context, userID uint, method, account string) (*models.Wallet, error)

	// PIN guard
	SetPin(ctx context.Context, userID uint, pin, currentPin string) error
	VerifyPin(ctx context.Context, userID uint, pin string) (*PinStatus, error)
}

// WalletCache defines the caching operations needed by the service.
// *cache.CacheService satisfies it.
type WalletCache interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}

// CardTokenizer exchanges a raw card number for a storable token. Deposits
// through the Card channel never persist the raw number.
type CardTokenizer interface {
	Tokenize(cardNumber string) (token string, err error)
}
