package services

import (
	"encoding/json"
	"strings"

	"github.com/hollyoak/plateful/internal/models"
)

// PatchField distinguishes the three JSON states of an optional patch
// field: absent (leave unchanged), null (clear), and value (set).
type PatchField[T any] struct {
	Defined bool
	Null    bool
	Value   T
}

func (field *PatchField[T]) UnmarshalJSON(data []byte) error {
	field.Defined = true
	if string(data) == "null" {
		field.Null = true
		var zero T
		field.Value = zero
		return nil
	}
	return json.Unmarshal(data, &field.Value)
}

// RecipePatch is a partial recipe update. Fields left out of the JSON
// body stay untouched on the stored row.
type RecipePatch struct {
	Title           PatchField[string]   `json:"title"`
	Description     PatchField[string]   `json:"description"`
	CookTimeMinutes PatchField[int]      `json:"cook_time_minutes"`
	Tags            PatchField[[]string] `json:"tags"`
	SourceURLs      PatchField[[]string] `json:"source_urls"`
	Ingredients     PatchField[[]string] `json:"ingredients"`
}

// ApplyRecipePatch mutates recipe in place per the tri-state rules. The
// title cannot be cleared, only replaced.
func ApplyRecipePatch(recipe *models.Recipe, patch RecipePatch) error {
	if patch.Title.Defined {
		if patch.Title.Null {
			return ErrRecipeTitleRequired
		}
		title := strings.TrimSpace(patch.Title.Value)
		if title == "" {
			return ErrRecipeTitleRequired
		}
		recipe.Title = title
	}

	if patch.Description.Defined {
		if patch.Description.Null {
			recipe.Description = ""
		} else {
			recipe.Description = strings.TrimSpace(patch.Description.Value)
		}
	}

	if patch.CookTimeMinutes.Defined {
		if patch.CookTimeMinutes.Null {
			recipe.CookTimeMinutes = nil
		} else {
			if patch.CookTimeMinutes.Value <= 0 {
				return ErrRecipeCookTimeInvalid
			}
			minutes := patch.CookTimeMinutes.Value
			recipe.CookTimeMinutes = &minutes
		}
	}

	if patch.Tags.Defined {
		recipe.Tags = patchedRecipeLines(patch.Tags)
	}
	if patch.SourceURLs.Defined {
		recipe.SourceURLs = patchedRecipeLines(patch.SourceURLs)
	}
	if patch.Ingredients.Defined {
		recipe.Ingredients = patchedRecipeLines(patch.Ingredients)
	}
	return nil
}

func patchedRecipeLines(field PatchField[[]string]) []string {
	if field.Null {
		return []string{}
	}
	return normalizeRecipeLines(field.Value)
}
