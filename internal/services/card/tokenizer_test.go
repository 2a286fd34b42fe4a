package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizePassthrough(t *testing.T) {
	svc := NewService()

	tok, err := svc.Tokenize("tok_visa")
	assert.NoError(t, err)
	assert.Equal(t, "tok_visa", tok)
}

func TestTokenizeRejectsBadNumbers(t *testing.T) {
	svc := NewService()

	cases := []string{
		"",
		"1234",
		"4242424242424241", // fails Luhn
		"4242-4242-4242-4242",
		"notacardnumber00",
	}
	for _, number := range cases {
		_, err := svc.Tokenize(number)
		assert.Error(t, err, "number %q should be rejected", number)
	}
}

func TestLuhn(t *testing.T) {
	assert.True(t, isValidCardNumber("4242424242424242"))
	assert.True(t, isValidCardNumber("5555555555554444"))
	assert.False(t, isValidCardNumber("4242424242424243"))
}
