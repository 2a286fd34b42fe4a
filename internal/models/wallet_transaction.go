package models

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// Ledger entry types
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeEarning    = "earning"
	TransactionTypeTransfer   = "transfer"
	TransactionTypeRefund     = "refund"
	TransactionTypePenalty    = "penalty"
)

// Ledger entry statuses. Completed, failed and cancelled are terminal.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Payment channels for deposits
const (
	PaymentMethodBkash  = "bKash"
	PaymentMethodNagad  = "Nagad"
	PaymentMethodRocket = "Rocket"
	PaymentMethodBank   = "Bank"
	PaymentMethodCard   = "Card"
	PaymentMethodNone   = "None"
)

// WalletTransaction is one row per balance-affecting event. Rows are append
// mostly: a pending request is finalized exactly once by settlement and never
// changes again.
type WalletTransaction struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	WalletID        uint       `gorm:"index;not null" json:"wallet_id"`
	UserID          uint       `gorm:"index;not null" json:"user_id"`
	Type            string     `gorm:"size:20;not null;index:idx_wallet_tx_type_status" json:"type"`
	Amount          float64    `gorm:"not null" json:"amount"`
	BalanceBefore   float64    `gorm:"not null;default:0" json:"balance_before"`
	BalanceAfter    float64    `gorm:"not null" json:"balance_after"`
	Description     string     `gorm:"size:255" json:"description"`
	Status          string     `gorm:"size:20;not null;default:'completed';index:idx_wallet_tx_type_status" json:"status"`
	PaymentMethod   string     `gorm:"size:20;not null;default:'None'" json:"payment_method"`
	PaymentAccount  string     `gorm:"size:100" json:"payment_account"`
	TransactionID   string     `gorm:"size:40;uniqueIndex" json:"transaction_id"`
	Reference       string     `gorm:"size:100" json:"reference"`
	Metadata        JSON       `gorm:"type:jsonb" json:"metadata"`
	ApprovedAt      *time.Time `json:"approved_at"`
	ApprovedBy      *uint      `json:"approved_by"`
	RejectedAt      *time.Time `json:"rejected_at"`
	RejectedBy      *uint      `json:"rejected_by"`
	RejectionReason string     `gorm:"size:255" json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the human-readable transaction id exactly once, before
// first persistence. The id is never reassigned afterwards.
func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == "" {
		t.TransactionID = NewTransactionID()
	}
	return nil
}

// NewTransactionID produces an id of the form TXN<millisecond epoch><4-digit random>.
func NewTransactionID() string {
	return fmt.Sprintf("TXN%d%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

// IsTerminal reports whether the entry can no longer change status.
func (t *WalletTransaction) IsTerminal() bool {
	return t.Status != TransactionStatusPending
}
