package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/services"
)

const weekDateLayout = "2006-01-02"

// GetWeekPlan returns the full 7x4 grid for the requested week. The
// plan row is created lazily on first view.
func (handler *Handler) GetWeekPlan(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}

	_, grid, err := handler.planService.WeekGridForUser(user.ID, weekStart)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load plan")
	}

	weekDays := services.WeekDays(weekStart)
	days := make([]string, 0, len(weekDays))
	for _, day := range weekDays {
		days = append(days, day.Format(weekDateLayout))
	}

	return c.JSON(fiber.Map{
		"week_start": weekStart.Format(weekDateLayout),
		"days":       days,
		"grid":       grid,
	})
}
