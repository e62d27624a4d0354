package model

import "time"

// Frequency is the cadence a habit is tracked on.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Habit represents a recurring practice owned by a single user. Owner and
// frequency are fixed at creation; name, importance and allowComments are
// editable metadata. Version backs the optimistic write check in the
// repository, so two concurrent toggles cannot both land on the same
// snapshot.
type Habit struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"index"`
	Name          string
	Frequency     Frequency
	Importance    int          `gorm:"default:0"`
	AllowComments bool         `gorm:"default:false"`
	Archived      bool         `gorm:"default:false"`
	Version       int          `gorm:"default:0"`
	Completions   []Completion `gorm:"foreignKey:HabitID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
