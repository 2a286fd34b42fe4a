package validation

import (
	"errors"
	"regexp"
)

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// ValidatePassword enforces the account password policy. The upper bound
// matches the bcrypt input limit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return errors.New("password must be between 8 and 72 characters")
	}
	if !HasSpecialChar(password) {
		return errors.New("password must contain at least one special character")
	}
	return nil
}
