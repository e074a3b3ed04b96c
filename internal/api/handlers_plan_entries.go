package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/services"
)

func (handler *Handler) AddPlanEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}
	input, err := parsePlanEntryPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.planService.AddEntry(user.ID, weekStart, input); err != nil {
		switch {
		case errors.Is(err, services.ErrPlanEntryInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid day or meal type")
		case errors.Is(err, services.ErrRecipeNotFound):
			return apiError(c, fiber.StatusNotFound, "recipe not found")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to add entry")
		}
	}
	return respondCreated(c)
}

func (handler *Handler) DeletePlanEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	if err := handler.planService.RemoveEntry(user.ID, weekStart, entryID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to remove entry")
	}
	return respondOK(c)
}

func (handler *Handler) ClearPlanCell(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}
	day, err := parseDayParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid day")
	}
	mealType := strings.ToLower(strings.TrimSpace(c.Params("meal")))

	if err := handler.planService.ClearCell(user.ID, weekStart, day, mealType); err != nil {
		if errors.Is(err, services.ErrPlanEntryInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid day or meal type")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to clear cell")
	}
	return respondOK(c)
}

func (handler *Handler) ClearPlanWeek(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}

	if err := handler.planService.ClearWeek(user.ID, weekStart); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear week")
	}
	return respondOK(c)
}
