package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := deleteAccountInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid password")
	}
	input.Password = strings.TrimSpace(input.Password)
	if input.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid password")
	}

	if err := handler.authService.ValidateAccountPassword(user.PasswordHash, input.Password); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid password")
	}

	if err := handler.authService.DeleteAccount(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete account")
	}

	handler.clearAuthCookie(c)
	handler.sessionNotifier.SessionClosed(user.ID)
	return respondOK(c)
}
