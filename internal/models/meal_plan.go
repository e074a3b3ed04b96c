package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

const DaysPerWeek = 7

// MealTypes lists the four meal slots in display order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

func IsValidMealType(mealType string) bool {
	switch mealType {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

func IsValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

type MealPlan struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_user_week"`
	WeekStart time.Time `gorm:"type:date;not null;uniqueIndex:uidx_user_week"`
	CreatedAt time.Time
}

// PlanEntry assigns a recipe or a freeform note to one (day, meal type) cell
// of a week. Entries are created and deleted, never edited in place.
type PlanEntry struct {
	ID         uint   `gorm:"primaryKey"`
	MealPlanID uint   `gorm:"not null;index"`
	Day        int    `gorm:"not null"`
	MealType   string `gorm:"not null"`
	RecipeID   *uint
	Notes      string
	CreatedAt  time.Time
}
