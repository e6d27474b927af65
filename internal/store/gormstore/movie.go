package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"

	"gorm.io/gorm"
)

type movieStore struct {
	s *Store
}

func (m *movieStore) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := m.s.db.WithContext(ctx).Order("id").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (m *movieStore) GetByID(ctx context.Context, id uint) (*models.Movie, error) {
	var movie models.Movie
	err := m.s.db.WithContext(ctx).First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &movie, nil
}

// Search runs in two phases: substring and year filtering happen in SQL,
// genre filtering happens in memory because the genre list is stored
// serialized and the query engine cannot look inside it.
func (m *movieStore) Search(ctx context.Context, query, genre string, year int) ([]models.Movie, error) {
	q := m.s.db.WithContext(ctx).Model(&models.Movie{})

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(director) LIKE ?", pattern, pattern)
	}
	if year != 0 {
		q = q.Where("year = ?", year)
	}

	var movies []models.Movie
	if err := q.Order("id").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	if genre == "" {
		return movies, nil
	}

	filtered := movies[:0]
	for _, movie := range movies {
		if hasGenre(movie.Genre, genre) {
			filtered = append(filtered, movie)
		}
	}
	return filtered, nil
}

func hasGenre(genres []string, want string) bool {
	for _, g := range genres {
		if strings.EqualFold(g, want) {
			return true
		}
	}
	return false
}

func (m *movieStore) Add(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	created := *movie
	created.ID = 0 // the table assigns ids; they are monotonic and never reused
	if err := m.s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, fmt.Errorf("add movie: %w", err)
	}
	return &created, nil
}

func (m *movieStore) Update(ctx context.Context, id uint, upd store.MovieUpdate) (*models.Movie, error) {
	var movie models.Movie
	err := m.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&movie, id).Error; err != nil {
			return err
		}

		if upd.Title != nil {
			movie.Title = *upd.Title
		}
		if upd.Year != nil {
			movie.Year = *upd.Year
		}
		if upd.Director != nil {
			movie.Director = *upd.Director
		}
		if upd.Genre != nil {
			movie.Genre = *upd.Genre
		}
		if upd.Poster != nil {
			movie.Poster = *upd.Poster
		}
		if upd.Rating != nil {
			movie.Rating = *upd.Rating
		}
		if upd.Synopsis != nil {
			movie.Synopsis = *upd.Synopsis
		}

		return tx.Save(&movie).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update movie %d: %w", id, err)
	}
	return &movie, nil
}

// Delete removes the movie together with every favorite referencing it.
// Both deletes commit or roll back as one unit.
func (m *movieStore) Delete(ctx context.Context, id uint) (bool, error) {
	var removed bool
	err := m.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Movie{}, id)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete movie %d: %w", id, err)
	}
	return removed, nil
}
