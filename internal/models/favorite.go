package models

import "time"

// Favorite links a user to a movie they favorited. The composite unique
// index keeps the pair a strict set membership: one row per (user, movie).
type Favorite struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	UserID    uint `gorm:"not null;index;uniqueIndex:idx_user_movie"`
	MovieID   uint `gorm:"not null;index;uniqueIndex:idx_user_movie"`
	CreatedAt time.Time
}

// TableName keeps the table name plural like the other models.
func (Favorite) TableName() string {
	return "favorites"
}
