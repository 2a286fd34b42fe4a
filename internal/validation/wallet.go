package validation

import (
	"regexp"

	"fwp/internal/errors"
	"fwp/internal/models"
)

var pinRegex = regexp.MustCompile(`^\d{4}$`)

var depositMethods = map[string]bool{
	models.PaymentMethodBkash:  true,
	models.PaymentMethodNagad:  true,
	models.PaymentMethodRocket: true,
	models.PaymentMethodBank:   true,
	models.PaymentMethodCard:   true,
}

var withdrawalMethods = map[string]bool{
	models.WithdrawalMethodBkash:  true,
	models.WithdrawalMethodNagad:  true,
	models.WithdrawalMethodRocket: true,
	models.WithdrawalMethodBank:   true,
}

// ValidateDepositRequest checks a user-submitted deposit request before a
// pending ledger entry is created.
func ValidateDepositRequest(amount float64, paymentMethod, paymentAccount string) error {
	if amount <= 0 || amount > MaxTransactionAmount {
		return errors.ErrInvalidAmount
	}
	if !depositMethods[paymentMethod] || paymentAccount == "" {
		return &errors.DomainError{
			Code:    "PAYMENT_DETAILS_REQUIRED",
			Message: "payment method and account are required",
		}
	}
	if len(paymentAccount) > MaxAccountLength {
		return &errors.DomainError{
			Code:    "INVALID_ACCOUNT",
			Message: "payment account is too long",
		}
	}
	return nil
}

// ValidateWithdrawalRequest checks a user-submitted withdrawal request.
// Balance and lock checks happen later, under the wallet row lock.
func ValidateWithdrawalRequest(amount float64, withdrawalMethod, withdrawalAccount string) error {
	if amount <= 0 || amount > MaxTransactionAmount {
		return errors.ErrInvalidAmount
	}
	return ValidateWithdrawalDetails(withdrawalMethod, withdrawalAccount)
}

// ValidateWithdrawalDetails checks a withdrawal destination on its own, for
// requests that update the saved method without moving funds.
func ValidateWithdrawalDetails(withdrawalMethod, withdrawalAccount string) error {
	if !withdrawalMethods[withdrawalMethod] || withdrawalAccount == "" {
		return &errors.DomainError{
			Code:    "WITHDRAWAL_DETAILS_REQUIRED",
			Message: "withdrawal method and account are required",
		}
	}
	if len(withdrawalAccount) > MaxAccountLength {
		return &errors.DomainError{
			Code:    "INVALID_ACCOUNT",
			Message: "withdrawal account is too long",
		}
	}
	return nil
}

// ValidatePinFormat enforces the 4 numeric digit PIN format.
func ValidatePinFormat(pin string) error {
	if !pinRegex.MatchString(pin) {
		return &errors.DomainError{
			Code:    "INVALID_PIN_FORMAT",
			Message: "PIN must be exactly 4 digits",
		}
	}
	return nil
}
