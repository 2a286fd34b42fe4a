package validation

import (
	"testing"

	"fwp/internal/errors"
	"fwp/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateDepositRequest(t *testing.T) {
	assert.NoError(t, ValidateDepositRequest(100, models.PaymentMethodBkash, "01712345678"))
	assert.NoError(t, ValidateDepositRequest(100, models.PaymentMethodCard, "4242424242424242"))

	assert.ErrorIs(t, ValidateDepositRequest(0, models.PaymentMethodBkash, "01712345678"), errors.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateDepositRequest(-50, models.PaymentMethodBkash, "01712345678"), errors.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateDepositRequest(MaxTransactionAmount+1, models.PaymentMethodBkash, "01712345678"), errors.ErrInvalidAmount)

	assert.Error(t, ValidateDepositRequest(100, "", "01712345678"))
	assert.Error(t, ValidateDepositRequest(100, "Barter", "01712345678"))
	assert.Error(t, ValidateDepositRequest(100, models.PaymentMethodBkash, ""))
}

func TestValidateWithdrawalRequest(t *testing.T) {
	assert.NoError(t, ValidateWithdrawalRequest(100, models.WithdrawalMethodNagad, "01898765432"))

	assert.ErrorIs(t, ValidateWithdrawalRequest(0, models.WithdrawalMethodNagad, "01898765432"), errors.ErrInvalidAmount)
	assert.Error(t, ValidateWithdrawalRequest(100, models.WithdrawalMethodNone, "01898765432"))
	assert.Error(t, ValidateWithdrawalRequest(100, models.WithdrawalMethodNagad, ""))
}

func TestValidatePinFormat(t *testing.T) {
	assert.NoError(t, ValidatePinFormat("0000"))
	assert.NoError(t, ValidatePinFormat("9876"))

	for _, pin := range []string{"", "123", "12345", "abcd", "12a4", "12 4"} {
		assert.Error(t, ValidatePinFormat(pin), "pin %q", pin)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("hunter2!"))

	assert.Error(t, ValidatePassword("short!"))
	assert.Error(t, ValidatePassword("noSpecialChars1"))
}
