package services

import (
	"errors"
	"strings"

	"github.com/hollyoak/plateful/internal/models"
)

var (
	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrRecipeTitleRequired   = errors.New("recipe title required")
	ErrRecipeCookTimeInvalid = errors.New("recipe cook time invalid")
)

type RecipeRepository interface {
	ListByUser(userID uint) ([]models.Recipe, error)
	FindByUserAndID(userID uint, recipeID uint) (models.Recipe, bool, error)
	Create(recipe *models.Recipe) error
	Save(recipe *models.Recipe) error
	DeleteByUserAndID(userID uint, recipeID uint) error
}

type RecipeService struct {
	recipes RecipeRepository
}

func NewRecipeService(recipes RecipeRepository) *RecipeService {
	return &RecipeService{recipes: recipes}
}

// RecipeInput carries the writable recipe fields as submitted.
type RecipeInput struct {
	Title           string
	Description     string
	CookTimeMinutes *int
	Tags            []string
	SourceURLs      []string
	Ingredients     []string
}

func (service *RecipeService) ListForUser(userID uint) ([]models.Recipe, error) {
	return service.recipes.ListByUser(userID)
}

func (service *RecipeService) FetchForUser(userID uint, recipeID uint) (models.Recipe, error) {
	recipe, found, err := service.recipes.FindByUserAndID(userID, recipeID)
	if err != nil {
		return models.Recipe{}, err
	}
	if !found {
		return models.Recipe{}, ErrRecipeNotFound
	}
	return recipe, nil
}

func (service *RecipeService) CreateForUser(userID uint, input RecipeInput) (models.Recipe, error) {
	normalized, err := normalizeRecipeInput(input)
	if err != nil {
		return models.Recipe{}, err
	}

	recipe := models.Recipe{
		UserID:          userID,
		Title:           normalized.Title,
		Description:     normalized.Description,
		CookTimeMinutes: normalized.CookTimeMinutes,
		Tags:            normalized.Tags,
		SourceURLs:      normalized.SourceURLs,
		Ingredients:     normalized.Ingredients,
	}
	if err := service.recipes.Create(&recipe); err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (service *RecipeService) PatchForUser(userID uint, recipeID uint, patch RecipePatch) error {
	recipe, err := service.FetchForUser(userID, recipeID)
	if err != nil {
		return err
	}
	if err := ApplyRecipePatch(&recipe, patch); err != nil {
		return err
	}
	return service.recipes.Save(&recipe)
}

// DeleteForUser removes the recipe and reports the image key it carried
// so the caller can drop the stored object. Deleting an absent recipe is
// a no-op. Plan entries referencing the recipe are left in place.
func (service *RecipeService) DeleteForUser(userID uint, recipeID uint) (string, error) {
	recipe, found, err := service.recipes.FindByUserAndID(userID, recipeID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	if err := service.recipes.DeleteByUserAndID(userID, recipeID); err != nil {
		return "", err
	}
	return recipe.ImageKey, nil
}

// ReplaceImageKey swaps the recipe's image key and returns the previous
// one so the caller can drop the replaced object. An empty key clears
// the image.
func (service *RecipeService) ReplaceImageKey(userID uint, recipeID uint, imageKey string) (string, error) {
	recipe, err := service.FetchForUser(userID, recipeID)
	if err != nil {
		return "", err
	}
	previous := recipe.ImageKey
	recipe.ImageKey = imageKey
	if err := service.recipes.Save(&recipe); err != nil {
		return "", err
	}
	return previous, nil
}

func normalizeRecipeInput(input RecipeInput) (RecipeInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return RecipeInput{}, ErrRecipeTitleRequired
	}
	if input.CookTimeMinutes != nil && *input.CookTimeMinutes <= 0 {
		return RecipeInput{}, ErrRecipeCookTimeInvalid
	}
	input.Description = strings.TrimSpace(input.Description)
	input.Tags = normalizeRecipeLines(input.Tags)
	input.SourceURLs = normalizeRecipeLines(input.SourceURLs)
	input.Ingredients = normalizeRecipeLines(input.Ingredients)
	return input, nil
}

// normalizeRecipeLines trims each line and drops the ones left blank,
// preserving order. The result is never nil.
func normalizeRecipeLines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}
