// Package gormstore is the SQLite-backed implementation of store.Store.
// All sub-stores share one *gorm.DB handle; every multi-step write runs in
// a single transaction so partial writes are never observable.
package gormstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Carlacms18/movie-catalog/internal/database"
	"github.com/Carlacms18/movie-catalog/internal/store"
	"github.com/Carlacms18/movie-catalog/internal/util"

	"gorm.io/gorm"
)

// DefaultSessionTTL is the session validity window used when the
// configuration does not override it.
const DefaultSessionTTL = 30 * 24 * time.Hour

type Store struct {
	db     *gorm.DB
	hasher util.PasswordHasher
	ttl    time.Duration

	// toggleLocks serializes favorite toggles per (user, movie) pair so a
	// double-tap cannot interleave its check-then-flip sequences.
	toggleLocks [64]sync.Mutex
}

var _ store.Store = (*Store)(nil)

// New wraps an opened database handle. The schema is not touched until
// EnsureSchema is called.
func New(db *gorm.DB, hasher util.PasswordHasher, sessionTTL time.Duration) *Store {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if hasher == nil {
		hasher = util.PBKDF2Hasher{}
	}
	return &Store{db: db, hasher: hasher, ttl: sessionTTL}
}

// EnsureSchema creates any missing tables and indexes. Existing data is
// never dropped or truncated.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := database.AutoMigrate(s.db.WithContext(ctx)); err != nil {
		return errors.Join(store.ErrSchema, err)
	}
	return nil
}

func (s *Store) Movies() store.MovieStore       { return &movieStore{s} }
func (s *Store) Accounts() store.AccountStore   { return &accountStore{s} }
func (s *Store) Sessions() store.SessionStore   { return &sessionStore{s} }
func (s *Store) Favorites() store.FavoriteStore { return &favoriteStore{s} }

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isDuplicate reports whether err is a unique-constraint violation. GORM's
// error translation covers the common case; the string check catches raw
// sqlite errors that escape it.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
