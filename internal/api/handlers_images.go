package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/imagestore"
)

// ServeImage delivers a stored image. In public mode keys are served
// directly; otherwise the request must carry an unexpired token signed
// for exactly this key.
func (handler *Handler) ServeImage(c *fiber.Ctx) error {
	key := c.Params("key")

	if !handler.publicImages {
		claims, err := handler.parseImageToken(c.Query("token"))
		if err != nil {
			return apiError(c, fiber.StatusForbidden, "invalid image token")
		}
		if claims.Key != key {
			return apiError(c, fiber.StatusForbidden, "invalid image token")
		}
	}

	path, err := handler.images.Resolve(key)
	if err != nil {
		if errors.Is(err, imagestore.ErrImageNotFound) || errors.Is(err, imagestore.ErrImageKeyInvalid) {
			return apiError(c, fiber.StatusNotFound, "image not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load image")
	}
	return c.SendFile(path)
}
