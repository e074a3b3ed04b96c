package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/services"
)

func (handler *Handler) ListRecipes(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipes, err := handler.recipeService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load recipes")
	}

	views := make([]recipeSummaryView, 0, len(recipes))
	for index := range recipes {
		views = append(views, handler.buildRecipeSummaryView(&recipes[index]))
	}
	return c.JSON(fiber.Map{"recipes": views})
}

func (handler *Handler) GetRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	recipe, err := handler.recipeService.FetchForUser(user.ID, recipeID)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return apiError(c, fiber.StatusNotFound, "recipe not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load recipe")
	}
	return c.JSON(handler.buildRecipeDetailView(&recipe))
}

func (handler *Handler) CreateRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	input, err := parseRecipePayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	recipe, err := handler.recipeService.CreateForUser(user.ID, input)
	if err != nil {
		return handler.respondRecipeInputError(c, err)
	}
	return respondCreatedWithID(c, recipe.ID)
}

// PatchRecipe applies a tri-state patch: fields absent from the body
// stay unchanged, JSON null clears, a value sets. The body is decoded
// with encoding/json directly so null and omission stay distinct.
func (handler *Handler) PatchRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	patch := services.RecipePatch{}
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.recipeService.PatchForUser(user.ID, recipeID, patch); err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return apiError(c, fiber.StatusNotFound, "recipe not found")
		}
		return handler.respondRecipeInputError(c, err)
	}
	return respondOK(c)
}

func (handler *Handler) DeleteRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	imageKey, err := handler.recipeService.DeleteForUser(user.ID, recipeID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete recipe")
	}
	if imageKey != "" {
		_ = handler.images.Remove(imageKey)
	}
	return respondOK(c)
}

func (handler *Handler) respondRecipeInputError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrRecipeTitleRequired):
		return apiError(c, fiber.StatusBadRequest, "title is required")
	case errors.Is(err, services.ErrRecipeCookTimeInvalid):
		return apiError(c, fiber.StatusBadRequest, "cook time must be positive")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save recipe")
	}
}
