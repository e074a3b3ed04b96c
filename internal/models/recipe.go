package models

import "time"

type Recipe struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index"`
	Title           string `gorm:"not null"`
	Description     string
	CookTimeMinutes *int
	Tags            []string `gorm:"serializer:json"`
	SourceURLs      []string `gorm:"serializer:json"`
	Ingredients     []string `gorm:"serializer:json"`
	ImageKey        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
