package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/importer"
	"github.com/hollyoak/plateful/internal/services"
)

func (handler *Handler) ImportRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := importRecipePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	imported, err := handler.recipeImporter.Import(payload.URL)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrImportURLInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid url")
		case errors.Is(err, importer.ErrImportNoRecipeFound):
			return apiError(c, fiber.StatusUnprocessableEntity, "no recipe found on page")
		default:
			return apiError(c, fiber.StatusBadGateway, "failed to fetch page")
		}
	}

	recipe, err := handler.recipeService.CreateForUser(user.ID, services.RecipeInput{
		Title:           imported.Title,
		Description:     imported.Description,
		CookTimeMinutes: imported.CookTimeMinutes,
		SourceURLs:      []string{imported.SourceURL},
		Ingredients:     imported.Ingredients,
	})
	if err != nil {
		return handler.respondRecipeInputError(c, err)
	}
	return respondCreatedWithID(c, recipe.ID)
}
