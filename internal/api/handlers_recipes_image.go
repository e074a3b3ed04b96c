package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/imagestore"
	"github.com/hollyoak/plateful/internal/services"
)

func (handler *Handler) UploadRecipeImage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	// Ownership check up front so a rejected request never stores an
	// orphan object.
	if _, err := handler.recipeService.FetchForUser(user.ID, recipeID); err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return apiError(c, fiber.StatusNotFound, "recipe not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load recipe")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "image file is required")
	}

	key, err := handler.images.SaveUpload(fileHeader)
	if err != nil {
		if errors.Is(err, imagestore.ErrImageTypeUnsupported) {
			return apiError(c, fiber.StatusBadRequest, "unsupported image type")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to store image")
	}

	previousKey, err := handler.recipeService.ReplaceImageKey(user.ID, recipeID, key)
	if err != nil {
		_ = handler.images.Remove(key)
		if errors.Is(err, services.ErrRecipeNotFound) {
			return apiError(c, fiber.StatusNotFound, "recipe not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save image")
	}
	if previousKey != "" && previousKey != key {
		_ = handler.images.Remove(previousKey)
	}

	return respondOK(c)
}

func (handler *Handler) DeleteRecipeImage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	previousKey, err := handler.recipeService.ReplaceImageKey(user.ID, recipeID, "")
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return apiError(c, fiber.StatusNotFound, "recipe not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to clear image")
	}
	if previousKey != "" {
		_ = handler.images.Remove(previousKey)
	}
	return respondOK(c)
}
