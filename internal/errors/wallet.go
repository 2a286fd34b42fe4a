package errors

var (
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrWalletLocked = &DomainError{
		Code:    "WALLET_LOCKED",
		Message: "wallet is locked",
	}
	ErrPinNotSet = &DomainError{
		Code:    "PIN_NOT_SET",
		Message: "wallet PIN has not been set",
	}
	ErrInvalidPin = &DomainError{
		Code:    "INVALID_PIN",
		Message: "invalid PIN",
	}
)
