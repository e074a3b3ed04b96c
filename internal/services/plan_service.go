package services

import (
	"errors"
	"strings"
	"time"

	"github.com/hollyoak/plateful/internal/models"
)

var ErrPlanEntryInvalid = errors.New("plan entry invalid")

type PlanRepository interface {
	FindByUserAndWeek(userID uint, weekStart time.Time) (models.MealPlan, bool, error)
	Create(plan *models.MealPlan) error
	ListEntries(planID uint) ([]models.PlanEntry, error)
	CreateEntry(entry *models.PlanEntry) error
	DeleteEntryByPlanAndID(planID uint, entryID uint) error
	DeleteEntriesByCell(planID uint, day int, mealType string) error
	DeleteEntriesByPlan(planID uint) error
}

type PlanRecipeRepository interface {
	ExistsByUserAndID(userID uint, recipeID uint) (bool, error)
	TitlesByUserAndIDs(userID uint, recipeIDs []uint) (map[uint]string, error)
	ListByUserAndIDs(userID uint, recipeIDs []uint) ([]models.Recipe, error)
}

type PlanService struct {
	plans   PlanRepository
	recipes PlanRecipeRepository
}

func NewPlanService(plans PlanRepository, recipes PlanRecipeRepository) *PlanService {
	return &PlanService{plans: plans, recipes: recipes}
}

// PlanEntryInput is one submitted grid assignment.
type PlanEntryInput struct {
	Day      int
	MealType string
	RecipeID *uint
	Notes    string
}

// EnsurePlan returns the user's plan row for weekStart, creating it on
// first access. A concurrent create racing on the (user, week) unique
// index resolves by re-reading the winner's row.
func (service *PlanService) EnsurePlan(userID uint, weekStart time.Time) (models.MealPlan, error) {
	plan, found, err := service.plans.FindByUserAndWeek(userID, weekStart)
	if err != nil {
		return models.MealPlan{}, err
	}
	if found {
		return plan, nil
	}

	fresh := models.MealPlan{UserID: userID, WeekStart: weekStart}
	if createErr := service.plans.Create(&fresh); createErr != nil {
		existing, foundAfter, findErr := service.plans.FindByUserAndWeek(userID, weekStart)
		if findErr == nil && foundAfter {
			return existing, nil
		}
		return models.MealPlan{}, createErr
	}
	return fresh, nil
}

// WeekGridForUser projects the stored entries of weekStart into the full
// 7x4 grid, lazily creating the plan row.
func (service *PlanService) WeekGridForUser(userID uint, weekStart time.Time) (models.MealPlan, WeekGrid, error) {
	plan, err := service.EnsurePlan(userID, weekStart)
	if err != nil {
		return models.MealPlan{}, nil, err
	}

	entries, err := service.plans.ListEntries(plan.ID)
	if err != nil {
		return models.MealPlan{}, nil, err
	}

	titles, err := service.recipes.TitlesByUserAndIDs(userID, collectEntryRecipeIDs(entries))
	if err != nil {
		return models.MealPlan{}, nil, err
	}
	return plan, ProjectWeekGrid(entries, titles), nil
}

// AddEntry schedules a recipe reference or a freeform note into one grid
// cell. A referenced recipe must belong to the user.
func (service *PlanService) AddEntry(userID uint, weekStart time.Time, input PlanEntryInput) error {
	if !models.IsValidDay(input.Day) || !models.IsValidMealType(input.MealType) {
		return ErrPlanEntryInvalid
	}
	if input.RecipeID != nil {
		owned, err := service.recipes.ExistsByUserAndID(userID, *input.RecipeID)
		if err != nil {
			return err
		}
		if !owned {
			return ErrRecipeNotFound
		}
	}

	plan, err := service.EnsurePlan(userID, weekStart)
	if err != nil {
		return err
	}
	entry := models.PlanEntry{
		MealPlanID: plan.ID,
		Day:        input.Day,
		MealType:   input.MealType,
		RecipeID:   input.RecipeID,
		Notes:      strings.TrimSpace(input.Notes),
	}
	return service.plans.CreateEntry(&entry)
}

// RemoveEntry deletes one entry. Removing from a week that was never
// opened, or an entry already gone, is a no-op.
func (service *PlanService) RemoveEntry(userID uint, weekStart time.Time, entryID uint) error {
	plan, found, err := service.plans.FindByUserAndWeek(userID, weekStart)
	if err != nil || !found {
		return err
	}
	return service.plans.DeleteEntryByPlanAndID(plan.ID, entryID)
}

// ClearCell deletes every entry of one (day, meal type) cell.
func (service *PlanService) ClearCell(userID uint, weekStart time.Time, day int, mealType string) error {
	if !models.IsValidDay(day) || !models.IsValidMealType(mealType) {
		return ErrPlanEntryInvalid
	}
	plan, found, err := service.plans.FindByUserAndWeek(userID, weekStart)
	if err != nil || !found {
		return err
	}
	return service.plans.DeleteEntriesByCell(plan.ID, day, mealType)
}

// ClearWeek deletes every entry of the week.
func (service *PlanService) ClearWeek(userID uint, weekStart time.Time) error {
	plan, found, err := service.plans.FindByUserAndWeek(userID, weekStart)
	if err != nil || !found {
		return err
	}
	return service.plans.DeleteEntriesByPlan(plan.ID)
}

// GroceryItems aggregates the ingredient lines of every recipe scheduled
// in the week. Recipes contribute in first-appearance order of the
// week's entries; a week never opened yields an empty list.
func (service *PlanService) GroceryItems(userID uint, weekStart time.Time) ([]string, error) {
	plan, found, err := service.plans.FindByUserAndWeek(userID, weekStart)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}

	entries, err := service.plans.ListEntries(plan.ID)
	if err != nil {
		return nil, err
	}

	recipeIDs := collectEntryRecipeIDs(entries)
	recipes, err := service.recipes.ListByUserAndIDs(userID, recipeIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
	}
	ordered := make([]models.Recipe, 0, len(recipes))
	for _, recipeID := range recipeIDs {
		if recipe, ok := byID[recipeID]; ok {
			ordered = append(ordered, recipe)
		}
	}
	return AggregateGroceries(ordered), nil
}

// collectEntryRecipeIDs lists the distinct recipe references of entries
// in first-appearance order.
func collectEntryRecipeIDs(entries []models.PlanEntry) []uint {
	seen := make(map[uint]struct{})
	recipeIDs := make([]uint, 0)
	for _, entry := range entries {
		if entry.RecipeID == nil {
			continue
		}
		if _, duplicate := seen[*entry.RecipeID]; duplicate {
			continue
		}
		seen[*entry.RecipeID] = struct{}{}
		recipeIDs = append(recipeIDs, *entry.RecipeID)
	}
	return recipeIDs
}
