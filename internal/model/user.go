package model

import "time"

// User stores account credentials and profile metadata.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Habits       []Habit `gorm:"foreignKey:UserID"`
}
