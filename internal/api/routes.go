package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/images/:key", handler.ServeImage)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	recipes := api.Group("/recipes", handler.AuthRequired)
	recipes.Get("", handler.ListRecipes)
	recipes.Post("", handler.CreateRecipe)
	recipes.Post("/import", handler.ImportRecipe)
	recipes.Get("/:id", handler.GetRecipe)
	recipes.Patch("/:id", handler.PatchRecipe)
	recipes.Delete("/:id", handler.DeleteRecipe)
	recipes.Post("/:id/image", handler.UploadRecipeImage)
	recipes.Delete("/:id/image", handler.DeleteRecipeImage)

	plans := api.Group("/plans", handler.AuthRequired)
	plans.Get("/:week", handler.GetWeekPlan)
	plans.Post("/:week/entries", handler.AddPlanEntry)
	plans.Delete("/:week/entries", handler.ClearPlanWeek)
	plans.Delete("/:week/entries/:id", handler.DeletePlanEntry)
	plans.Delete("/:week/cells/:day/:meal", handler.ClearPlanCell)
	plans.Get("/:week/groceries", handler.GetGroceries)
	plans.Post("/:week/groceries/toggle", handler.ToggleGroceryItem)
	plans.Get("/:week/groceries/export", handler.ExportGroceries)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
