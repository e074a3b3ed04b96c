package db

import (
	"fmt"

	"github.com/hollyoak/plateful/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects to a Postgres database. Schema management differs
// from the SQLite path: the embedded migration scripts are SQLite-flavored,
// so Postgres deployments rely on GORM auto-migration instead.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.MealPlan{},
		&models.PlanEntry{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate postgres schema: %w", err)
	}

	return database, nil
}
