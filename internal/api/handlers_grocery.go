package api

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/services"
)

// GetGroceries recomputes the week's grocery list. Recomputing resets
// the transient checked state, so a fresh view always starts unchecked.
func (handler *Handler) GetGroceries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}

	items, err := handler.planService.GroceryItems(user.ID, weekStart)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build grocery list")
	}
	handler.groceryChecklist.Reset(user.ID, weekStart, items)

	return c.JSON(fiber.Map{
		"week_start": weekStart.Format(weekDateLayout),
		"items":      items,
		"checked":    []string{},
	})
}

func (handler *Handler) ToggleGroceryItem(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}

	payload := toggleGroceryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	checked, known := handler.groceryChecklist.Toggle(user.ID, weekStart, payload.Item)
	if !known {
		return apiError(c, fiber.StatusNotFound, "item not in current list")
	}
	return c.JSON(fiber.Map{"ok": true, "checked": checked})
}

func (handler *Handler) ExportGroceries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	weekStart, err := handler.parseWeekParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid week date")
	}

	items, err := handler.planService.GroceryItems(user.ID, weekStart)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build grocery list")
	}

	export, err := services.BuildGroceryExport(weekStart, items, c.Query("format"))
	if err != nil {
		if errors.Is(err, services.ErrExportFormatUnknown) {
			return apiError(c, fiber.StatusBadRequest, "unknown export format")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+url.PathEscape(export.Filename)+`"`)
	return c.Send(export.Body)
}
