package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, err := parseChangePasswordInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.authService.ValidatePasswordChange(user.PasswordHash, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return handler.respondPasswordChangeError(c, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}
	if err := handler.authService.UpdatePassword(user.ID, string(passwordHash), false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update password")
	}

	return respondOK(c)
}

func (handler *Handler) respondPasswordChangeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPasswordChangeInvalidInput):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrPasswordConfirmMismatch):
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	case errors.Is(err, services.ErrCurrentPasswordInvalid):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrNewPasswordMustDiffer):
		return apiError(c, fiber.StatusBadRequest, "new password must differ")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	default:
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
}

// ResetPassword completes the forced change started by an
// administrative reset. The token from the login response proves the
// caller knew the temporary password; changing the password invalidates
// the token.
func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	input, err := parseResetPasswordInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Password != input.ConfirmPassword {
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	}
	if err := services.ValidatePasswordStrength(input.Password); err != nil {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}

	claims, err := services.ParsePasswordResetToken(handler.secretKey, input.Token, time.Now())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid reset token")
	}
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid reset token")
	}
	if err := services.VerifyPasswordResetClaims(claims, user.PasswordHash); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid reset token")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}
	if err := handler.authService.UpdatePassword(user.ID, string(passwordHash), false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	return respondOK(c)
}
