package wallet

import "time"

// PIN lockout policy
const (
	MaxPinAttempts  = 3
	PinLockDuration = 30 * time.Minute
)

// Pagination defaults
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)
