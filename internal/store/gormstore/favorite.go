package gormstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"

	"gorm.io/gorm"
)

type favoriteStore struct {
	s *Store
}

func (f *favoriteStore) lockFor(userID, movieID uint) *sync.Mutex {
	idx := (userID*31 + movieID) % uint(len(f.s.toggleLocks))
	return &f.s.toggleLocks[idx]
}

// Toggle flips the favorite membership of (userID, movieID) and reports
// the state afterwards. The pair is checked and flipped inside one
// transaction, guarded by a per-pair lock; the composite unique index is
// the backstop, so two rows for the same pair can never exist.
func (f *favoriteStore) Toggle(ctx context.Context, userID, movieID uint) (bool, error) {
	mu := f.lockFor(userID, movieID)
	mu.Lock()
	defer mu.Unlock()

	var nowFavorited bool
	err := f.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// both endpoints must exist; enforced here, not just by the FK declaration
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}
		if err := tx.Model(&models.Movie{}).Where("id = ?", movieID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}

		res := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			nowFavorited = false
			return nil
		}

		fav := models.Favorite{UserID: userID, MovieID: movieID}
		if err := tx.Create(&fav).Error; err != nil {
			if isDuplicate(err) {
				// lost a race against a concurrent insert of the same
				// pair: this toggle still has to flip, so remove it
				nowFavorited = false
				return tx.Where("user_id = ? AND movie_id = ?", userID, movieID).
					Delete(&models.Favorite{}).Error
			}
			return err
		}
		nowFavorited = true
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, store.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle favorite (%d,%d): %w", userID, movieID, err)
	}
	return nowFavorited, nil
}

func (f *favoriteStore) List(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := f.s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

func (f *favoriteStore) IsFavorite(ctx context.Context, userID, movieID uint) (bool, error) {
	var count int64
	err := f.s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return count > 0, nil
}

func (f *favoriteStore) ListMovies(ctx context.Context, userID uint) ([]models.Movie, error) {
	var movies []models.Movie
	err := f.s.db.WithContext(ctx).
		Model(&models.Movie{}).
		Joins("JOIN favorites ON favorites.movie_id = movies.id").
		Where("favorites.user_id = ?", userID).
		Order("movies.id").
		Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("list favorite movies: %w", err)
	}
	return movies, nil
}
