package gormstore

import (
	"context"
	"errors"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"

	"gorm.io/gorm"
)

// SeedIfEmpty inserts the starter catalog when the movies table has zero
// rows. The count and the inserts share one transaction, so restarts and
// repeated calls can never duplicate the catalog.
func (s *Store) SeedIfEmpty(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Movie{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil // already seeded
		}
		for _, m := range store.SeedCatalog() {
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Join(store.ErrSeed, err)
	}
	return nil
}
