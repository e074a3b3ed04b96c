package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/services"
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}

	email, password, err := services.NormalizeCredentialsInput(credentials.Email, credentials.Password)
	if err != nil {
		return credentialsInput{}, err
	}

	credentials.Email = email
	credentials.Password = password
	credentials.ConfirmPassword = strings.TrimSpace(credentials.ConfirmPassword)
	credentials.DisplayName = strings.TrimSpace(credentials.DisplayName)
	return credentials, nil
}

func parseChangePasswordInput(c *fiber.Ctx) (changePasswordInput, error) {
	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return changePasswordInput{}, err
	}
	return input, nil
}

func parseResetPasswordInput(c *fiber.Ctx) (resetPasswordInput, error) {
	input := resetPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return resetPasswordInput{}, err
	}

	input.Token = strings.TrimSpace(input.Token)
	input.Password = strings.TrimSpace(input.Password)
	input.ConfirmPassword = strings.TrimSpace(input.ConfirmPassword)
	if input.Token == "" || input.Password == "" || input.ConfirmPassword == "" {
		return resetPasswordInput{}, errors.New("missing reset fields")
	}
	return input, nil
}

// parseWeekParam accepts any date of the intended week and snaps it to
// that week's Monday.
func (handler *Handler) parseWeekParam(c *fiber.Ctx) (time.Time, error) {
	raw := strings.TrimSpace(c.Params("week"))
	if raw == "" {
		return time.Time{}, errors.New("week is required")
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, handler.location)
	if err != nil {
		return time.Time{}, err
	}
	return services.NormalizeToMonday(parsed, handler.location), nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

func parseDayParam(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Params("day"))
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid day")
	}
	return parsed, nil
}

func parseRecipePayload(c *fiber.Ctx) (services.RecipeInput, error) {
	payload := recipePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return services.RecipeInput{}, err
	}

	return services.RecipeInput{
		Title:           payload.Title,
		Description:     payload.Description,
		CookTimeMinutes: payload.CookTimeMinutes,
		Tags:            payload.Tags,
		SourceURLs:      payload.SourceURLs,
		Ingredients:     payload.Ingredients,
	}, nil
}

func parsePlanEntryPayload(c *fiber.Ctx) (services.PlanEntryInput, error) {
	payload := planEntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return services.PlanEntryInput{}, err
	}

	return services.PlanEntryInput{
		Day:      payload.Day,
		MealType: strings.ToLower(strings.TrimSpace(payload.MealType)),
		RecipeID: payload.RecipeID,
		Notes:    payload.Notes,
	}, nil
}
