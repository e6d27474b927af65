package models

import "time"

// Movie represents one catalog entry. Genres keep their original order;
// the column stores them serialized as JSON, so they cannot be filtered
// by the query engine directly (see store.MovieStore.Search).
type Movie struct {
	ID       uint     `gorm:"primaryKey;autoIncrement"`
	Title    string   `gorm:"size:255;not null;index"`
	Year     int      `gorm:"index"`
	Director string   `gorm:"size:255;index"`
	Genre    []string `gorm:"serializer:json"`
	Poster   string   `gorm:"size:512"`
	Rating   float64  // 0-10
	Synopsis string   `gorm:"size:2048"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
