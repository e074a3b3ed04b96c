package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Recipes *RecipeRepository
	Plans   *PlanRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Recipes: NewRecipeRepository(database),
		Plans:   NewPlanRepository(database),
	}
}
