// Package card exchanges card numbers for Stripe tokens so deposit requests
// through the Card channel never persist a raw card number.
package card

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// Service tokenizes card numbers
type Service interface {
	Tokenize(cardNumber string) (string, error)
}

type tokenizer struct{}

// NewService creates a new card tokenizer backed by Stripe. The secret key is
// read from STRIPE_SECRET_KEY.
func NewService() Service {
	return &tokenizer{}
}

func (t *tokenizer) Tokenize(cardNumber string) (string, error) {
	// Tokens produced client-side by Stripe Elements pass straight through.
	if strings.HasPrefix(cardNumber, "tok_") {
		return cardNumber, nil
	}

	if !isValidCardNumber(cardNumber) {
		return "", errors.New("invalid card number: failed validation check")
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number: &cardNumber,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe tokenization failed: %w", err)
	}

	return stripeToken.ID, nil
}

// Luhn Algorithm: Used to validate credit card numbers
func isValidCardNumber(cardNumber string) bool {
	if len(cardNumber) < 12 || len(cardNumber) > 19 {
		return false
	}

	var sum int
	shouldDouble := false

	// Iterate over the digits of the card number from right to left
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit = digit * 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}

	// Card is valid if the sum is a multiple of 10
	return sum%10 == 0
}
