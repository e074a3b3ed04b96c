package api

import (
	"net/url"
	"time"

	"github.com/hollyoak/plateful/internal/models"
)

type recipeSummaryView struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Tags            []string `json:"tags"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	ImageURL        string   `json:"image_url,omitempty"`
	IngredientCount int      `json:"ingredient_count"`
}

type recipeDetailView struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CookTimeMinutes *int      `json:"cook_time_minutes"`
	Tags            []string  `json:"tags"`
	SourceURLs      []string  `json:"source_urls"`
	Ingredients     []string  `json:"ingredients"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (handler *Handler) buildRecipeSummaryView(recipe *models.Recipe) recipeSummaryView {
	return recipeSummaryView{
		ID:              recipe.ID,
		Title:           recipe.Title,
		Tags:            nonNilLines(recipe.Tags),
		CookTimeMinutes: recipe.CookTimeMinutes,
		ImageURL:        handler.recipeImageURL(recipe),
		IngredientCount: len(recipe.Ingredients),
	}
}

func (handler *Handler) buildRecipeDetailView(recipe *models.Recipe) recipeDetailView {
	return recipeDetailView{
		ID:              recipe.ID,
		Title:           recipe.Title,
		Description:     recipe.Description,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Tags:            nonNilLines(recipe.Tags),
		SourceURLs:      nonNilLines(recipe.SourceURLs),
		Ingredients:     nonNilLines(recipe.Ingredients),
		ImageURL:        handler.recipeImageURL(recipe),
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}
}

// recipeImageURL mints the delivery URL for a stored image key. Signed
// mode appends a short-lived token; public mode serves the key bare.
func (handler *Handler) recipeImageURL(recipe *models.Recipe) string {
	if recipe.ImageKey == "" {
		return ""
	}
	if handler.publicImages {
		return "/images/" + recipe.ImageKey
	}
	token, err := handler.buildImageToken(recipe.ImageKey, imageTokenTTL)
	if err != nil {
		return ""
	}
	return "/images/" + recipe.ImageKey + "?token=" + url.QueryEscape(token)
}

func nonNilLines(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
