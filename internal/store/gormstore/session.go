package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionStore struct {
	s *Store
}

// Create opens a session and returns its opaque token. Tokens are random
// UUIDs, so a token is never reused after issuance.
func (ss *sessionStore) Create(ctx context.Context, userID uint, deviceInfo, ipAddress string) (string, error) {
	now := time.Now()
	sess := models.Session{
		UserID:     userID,
		Token:      uuid.NewString(),
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		LastActive: now,
		ExpiresAt:  now.Add(ss.s.ttl),
		CreatedAt:  now,
	}
	if err := ss.s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.Token, nil
}

// Validate looks the token up and, when the session is still alive, stamps
// LastActive. ExpiresAt is left alone: activity is recorded but the
// lifetime does not slide. A failed validation writes nothing.
func (ss *sessionStore) Validate(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	err := ss.s.db.WithContext(ctx).Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	now := time.Now()
	if now.After(sess.ExpiresAt) {
		return nil, store.ErrNotFound
	}

	if err := ss.s.db.WithContext(ctx).Model(&sess).UpdateColumn("last_active", now).Error; err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	sess.LastActive = now
	return &sess, nil
}

// End deletes the session row. Ending a token that never existed or was
// already ended is not an error.
func (ss *sessionStore) End(ctx context.Context, token string) error {
	if err := ss.s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// SweepExpired deletes every session past its expiry.
func (ss *sessionStore) SweepExpired(ctx context.Context) (int64, error) {
	res := ss.s.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
