package models

import (
	"time"
)

// Supported wallet currencies
const (
	CurrencyBDT = "BDT"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyINR = "INR"
)

// Withdrawal destination channels
const (
	WithdrawalMethodBkash  = "bKash"
	WithdrawalMethodNagad  = "Nagad"
	WithdrawalMethodRocket = "Rocket"
	WithdrawalMethodBank   = "Bank"
	WithdrawalMethodNone   = "None"
)

// Wallet holds a user's spendable balance, aggregate counters and the PIN
// lockout state. Exactly one wallet exists per user; it is created lazily on
// first access.
type Wallet struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	UserID            uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance           float64    `gorm:"not null;default:0" json:"balance"`
	TotalDeposited    float64    `gorm:"not null;default:0" json:"total_deposited"`
	TotalWithdrawn    float64    `gorm:"not null;default:0" json:"total_withdrawn"`
	TotalEarned       float64    `gorm:"not null;default:0" json:"total_earned"`
	Currency          string     `gorm:"size:10;not null;default:'BDT'" json:"currency"`
	PinHash           string     `gorm:"size:100" json:"-"`
	IsPinSet          bool       `gorm:"not null;default:false" json:"is_pin_set"`
	FailedAttempts    int        `gorm:"not null;default:0" json:"failed_attempts"`
	IsLocked          bool       `gorm:"not null;default:false" json:"is_locked"`
	LockedUntil       *time.Time `json:"locked_until"`
	WithdrawalMethod  string     `gorm:"size:20;not null;default:'None'" json:"withdrawal_method"`
	WithdrawalAccount string     `gorm:"size:100" json:"withdrawal_account"`
	LastTransaction   *time.Time `json:"last_transaction"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// LockExpired reports whether the PIN lockout window has already passed.
func (w *Wallet) LockExpired(now time.Time) bool {
	return w.LockedUntil == nil || !w.LockedUntil.After(now)
}
