package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"
	"github.com/Carlacms18/movie-catalog/internal/util"

	"gorm.io/gorm"
)

type accountStore struct {
	s *Store
}

// Register validates the input, stores the password through the configured
// hasher and inserts the user. The unique index on email arbitrates
// concurrent registrations: the losing insert comes back as ErrEmailInUse,
// never as a generic failure.
func (a *accountStore) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := util.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := util.ValidateName(name); err != nil {
		return nil, err
	}

	stored, err := a.s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: stored,
		Name:     name,
	}
	if err := a.s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, store.ErrEmailInUse
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (a *accountStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	// email matches exactly as stored (case-sensitive)
	err := a.s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !a.s.hasher.Verify(password, user.Password) {
		return nil, store.ErrInvalidCredentials
	}
	return &user, nil
}

// CurrentUser derives the logged-in user from a validated session token.
// Sessions are the single source of truth; there is no mutable
// "current user" row anywhere.
func (a *accountStore) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	sess, err := a.s.Sessions().Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = a.s.db.WithContext(ctx).First(&user, sess.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", sess.UserID, err)
	}
	return &user, nil
}

func (a *accountStore) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := a.s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
