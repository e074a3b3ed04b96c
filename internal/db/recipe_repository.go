package db

import (
	"github.com/hollyoak/plateful/internal/models"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	database *gorm.DB
}

func NewRecipeRepository(database *gorm.DB) *RecipeRepository {
	return &RecipeRepository{database: database}
}

func (repo *RecipeRepository) ListByUser(userID uint) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("lower(title) ASC, id ASC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (repo *RecipeRepository) FindByUserAndID(userID uint, recipeID uint) (models.Recipe, bool, error) {
	recipe := models.Recipe{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, recipeID).
		Limit(1).
		Find(&recipe)
	if result.Error != nil {
		return models.Recipe{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Recipe{}, false, nil
	}
	return recipe, true, nil
}

func (repo *RecipeRepository) ExistsByUserAndID(userID uint, recipeID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Recipe{}).
		Where("user_id = ? AND id = ?", userID, recipeID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *RecipeRepository) ListByUserAndIDs(userID uint, recipeIDs []uint) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if len(recipeIDs) == 0 {
		return recipes, nil
	}
	if err := repo.database.
		Where("user_id = ? AND id IN (?)", userID, recipeIDs).
		Order("id ASC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (repo *RecipeRepository) TitlesByUserAndIDs(userID uint, recipeIDs []uint) (map[uint]string, error) {
	titles := make(map[uint]string, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return titles, nil
	}

	type titleRow struct {
		ID    uint   `gorm:"column:id"`
		Title string `gorm:"column:title"`
	}
	rows := make([]titleRow, 0, len(recipeIDs))
	if err := repo.database.Model(&models.Recipe{}).
		Select("id", "title").
		Where("user_id = ? AND id IN (?)", userID, recipeIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}

func (repo *RecipeRepository) Create(recipe *models.Recipe) error {
	return repo.database.Create(recipe).Error
}

func (repo *RecipeRepository) Save(recipe *models.Recipe) error {
	return repo.database.Save(recipe).Error
}

func (repo *RecipeRepository) DeleteByUserAndID(userID uint, recipeID uint) error {
	return repo.database.Where("user_id = ? AND id = ?", userID, recipeID).Delete(&models.Recipe{}).Error
}
