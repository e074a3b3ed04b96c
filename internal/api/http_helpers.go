package api

import (
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func respondOK(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func respondCreated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func respondCreatedWithID(c *fiber.Ctx, id uint) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": id})
}
