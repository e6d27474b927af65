package database

import (
	"fmt"

	"github.com/Carlacms18/movie-catalog/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models. It only ever
// creates missing tables, columns and indexes; existing data is untouched,
// so it is safe to run on every startup.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Movie{},
		&models.User{},
		&models.Session{},
		&models.Favorite{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
