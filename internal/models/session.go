package models

import "time"

// Session stores one login session. A session stays valid until ExpiresAt
// or until it is ended explicitly; LastActive is bookkeeping only and does
// not extend the lifetime.
type Session struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	UserID     uint      `gorm:"index;not null"`
	Token      string    `gorm:"size:64;uniqueIndex;not null"`
	DeviceInfo string    `gorm:"size:255"`
	IPAddress  string    `gorm:"size:64"`
	LastActive time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"index;not null"`
	CreatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
