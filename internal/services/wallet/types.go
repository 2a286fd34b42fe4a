package wallet

import (
	"time"

	"fwp/internal/models"
)

// DepositParams represents a user-submitted deposit request
type DepositParams struct {
	Amount         float64
	PaymentMethod  string
	PaymentAccount string
	Reference      string
}

// WithdrawalParams represents a user-submitted withdrawal request
type WithdrawalParams struct {
	Amount            float64
	WithdrawalMethod  string
	WithdrawalAccount string
}

// TransactionQuery narrows and pages a transaction history listing
type TransactionQuery struct {
	Type   string
	Status string
	Limit  int
	Skip   int
}

// TransactionPage is one page of a user's ledger, newest first
type TransactionPage struct {
	Transactions []*models.WalletTransaction `json:"transactions"`
	Total        int64                       `json:"total"`
	Limit        int                         `json:"limit"`
	Skip         int                         `json:"skip"`
	HasMore      bool                        `json:"has_more"`
}

// PinStatus reports the outcome of a PIN verification. AttemptsLeft is only
// meaningful on a mismatch, LockedUntil only while the wallet is locked.
type PinStatus struct {
	Verified     bool       `json:"verified"`
	AttemptsLeft int        `json:"attempts_left,omitempty"`
	LockedUntil  *time.Time `json:"locked_until,omitempty"`
}
