package models

import "time"

// User represents an application account.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"size:255;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // opaque secret, format depends on the configured hasher
	Name     string `gorm:"size:64"`

	CreatedAt time.Time
}
