package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/models"
	"github.com/hollyoak/plateful/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if credentials.ConfirmPassword == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if credentials.Password != credentials.ConfirmPassword {
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	}
	if err := services.ValidatePasswordStrength(credentials.Password); err != nil {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}

	exists, err := handler.authService.RegistrationEmailExists(credentials.Email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to check email")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	user := models.User{
		Email:        credentials.Email,
		PasswordHash: string(passwordHash),
		DisplayName:  credentials.DisplayName,
		CreatedAt:    time.Now().In(handler.location),
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		// Unique index on the normalized email backstops the
		// existence check above.
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.sessionNotifier.SessionOpened(user.ID)

	return respondCreated(c)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, time.Now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many failed attempts")
	}

	user, err := handler.authService.FindByNormalizedEmail(credentials.Email)
	if err != nil {
		handler.loginLimiter.recordFailure(limiterKey, time.Now())
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := handler.authService.ValidateAccountPassword(user.PasswordHash, credentials.Password); err != nil {
		handler.loginLimiter.recordFailure(limiterKey, time.Now())
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if user.MustChangePassword {
		token, err := services.BuildPasswordResetToken(handler.secretKey, user.ID, user.PasswordHash, passwordResetTokenTTL, time.Now())
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to create reset token")
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":       "password change required",
			"reset_token": token,
		})
	}

	if err := handler.setAuthCookie(c, &user, credentials.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.loginLimiter.forget(limiterKey)
	handler.sessionNotifier.SessionOpened(user.ID)

	return respondOK(c)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.clearAuthCookie(c)
	handler.sessionNotifier.SessionClosed(user.ID)
	return respondOK(c)
}
