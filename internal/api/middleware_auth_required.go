package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	state := currentSession(c)
	if state.status == sessionUnknown {
		// Route registered without ResolveSession in front of it.
		return apiError(c, fiber.StatusInternalServerError, "session not resolved")
	}
	if state.status != sessionPresent {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}
