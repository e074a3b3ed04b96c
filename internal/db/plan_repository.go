package db

import (
	"time"

	"github.com/hollyoak/plateful/internal/models"
	"gorm.io/gorm"
)

type PlanRepository struct {
	database *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

func (repo *PlanRepository) FindByUserAndWeek(userID uint, weekStart time.Time) (models.MealPlan, bool, error) {
	plan := models.MealPlan{}
	result := repo.database.
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Limit(1).
		Find(&plan)
	if result.Error != nil {
		return models.MealPlan{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MealPlan{}, false, nil
	}
	return plan, true, nil
}

func (repo *PlanRepository) Create(plan *models.MealPlan) error {
	return repo.database.Create(plan).Error
}

func (repo *PlanRepository) ListEntries(planID uint) ([]models.PlanEntry, error) {
	entries := make([]models.PlanEntry, 0)
	if err := repo.database.
		Where("meal_plan_id = ?", planID).
		Order("day ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *PlanRepository) CreateEntry(entry *models.PlanEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *PlanRepository) DeleteEntryByPlanAndID(planID uint, entryID uint) error {
	return repo.database.Where("meal_plan_id = ? AND id = ?", planID, entryID).Delete(&models.PlanEntry{}).Error
}

func (repo *PlanRepository) DeleteEntriesByCell(planID uint, day int, mealType string) error {
	return repo.database.
		Where("meal_plan_id = ? AND day = ? AND meal_type = ?", planID, day, mealType).
		Delete(&models.PlanEntry{}).Error
}

func (repo *PlanRepository) DeleteEntriesByPlan(planID uint) error {
	return repo.database.Where("meal_plan_id = ?", planID).Delete(&models.PlanEntry{}).Error
}
