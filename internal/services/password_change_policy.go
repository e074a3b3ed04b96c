package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordChangeInvalidInput = errors.New("password change invalid input")
	ErrPasswordConfirmMismatch    = errors.New("password confirmation mismatch")
	ErrCurrentPasswordInvalid     = errors.New("current password invalid")
	ErrNewPasswordMustDiffer      = errors.New("new password must differ")
)

// ValidatePasswordChange checks a change-password submission against the
// stored hash: all three fields present, confirmation matching, current
// password correct, new password different and strong.
func (service *AuthService) ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrPasswordChangeInvalidInput
	}
	if newPassword != confirmPassword {
		return ErrPasswordConfirmMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil {
		return ErrCurrentPasswordInvalid
	}
	if currentPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}
