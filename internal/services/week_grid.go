package services

import (
	"strings"

	"github.com/hollyoak/plateful/internal/models"
)

// Fallback labels for entries whose recipe reference does not resolve
// (labelDanglingRecipe) or that carry neither reference nor note (labelBareItem).
const (
	labelDanglingRecipe = "Recipe"
	labelBareItem       = "Item"
)

// WeekGridEntry is one scheduled item inside a grid cell, carrying the
// label the client renders instead of the raw row.
type WeekGridEntry struct {
	ID        uint   `json:"id"`
	Day       int    `json:"day"`
	MealType  string `json:"meal_type"`
	RecipeID  *uint  `json:"recipe_id,omitempty"`
	Label     string `json:"label"`
	HasRecipe bool   `json:"has_recipe"`
}

// WeekGrid maps day index (0 = Monday) to meal type to the ordered
// entries of that cell. Every (day, meal type) cell is present, empty
// cells hold an empty list.
type WeekGrid map[int]map[string][]WeekGridEntry

// ProjectWeekGrid partitions entries into the 7x4 grid, preserving the
// supplied order within each cell. recipeTitles resolves recipe
// references to display labels; entries with an out-of-range day or an
// unknown meal type are dropped. The input slice is not mutated.
func ProjectWeekGrid(entries []models.PlanEntry, recipeTitles map[uint]string) WeekGrid {
	grid := make(WeekGrid, models.DaysPerWeek)
	for day := 0; day < models.DaysPerWeek; day++ {
		cells := make(map[string][]WeekGridEntry, len(models.MealTypes))
		for _, mealType := range models.MealTypes {
			cells[mealType] = make([]WeekGridEntry, 0)
		}
		grid[day] = cells
	}

	for _, entry := range entries {
		if !models.IsValidDay(entry.Day) || !models.IsValidMealType(entry.MealType) {
			continue
		}
		label, hasRecipe := entryDisplayLabel(entry, recipeTitles)
		grid[entry.Day][entry.MealType] = append(grid[entry.Day][entry.MealType], WeekGridEntry{
			ID:        entry.ID,
			Day:       entry.Day,
			MealType:  entry.MealType,
			RecipeID:  entry.RecipeID,
			Label:     label,
			HasRecipe: hasRecipe,
		})
	}
	return grid
}

// entryDisplayLabel picks what a cell shows for one entry: the resolved
// recipe title, then a non-blank note, then a fallback describing what
// kind of entry it is.
func entryDisplayLabel(entry models.PlanEntry, recipeTitles map[uint]string) (string, bool) {
	if entry.RecipeID != nil {
		if title, ok := recipeTitles[*entry.RecipeID]; ok && strings.TrimSpace(title) != "" {
			return title, true
		}
	}
	if notes := strings.TrimSpace(entry.Notes); notes != "" {
		return notes, false
	}
	if entry.RecipeID != nil {
		return labelDanglingRecipe, false
	}
	return labelBareItem, false
}
