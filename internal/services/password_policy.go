package services

import (
	"errors"
	"unicode"
)

var ErrWeakPassword = errors.New("weak password")

const minPasswordRunes = 8

// ValidatePasswordStrength requires at least eight runes spanning an
// upper-case letter, a lower-case letter, and a digit.
func ValidatePasswordStrength(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordRunes {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range runes {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
		if hasUpper && hasLower && hasDigit {
			return nil
		}
	}
	return ErrWeakPassword
}
