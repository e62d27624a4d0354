package model

import "time"

// Completion is a single recorded completion event. The wire format exposes
// two collections — plain `completedDates` and `completions` records carrying
// a comment, an additive schema change in the original data — but internally
// both live in one ordered history distinguished by the Commented tag.
// SplitHistory/MergeHistory translate between the two shapes at the
// serialization boundary.
type Completion struct {
	ID        uint `gorm:"primaryKey"`
	HabitID   uint `gorm:"index"`
	Date      time.Time
	Comment   string
	Commented bool `gorm:"default:false"`
}

// SplitHistory projects a unified history into the legacy wire shape: the
// plain completion instants and the commented records, each preserving
// insertion order.
func SplitHistory(history []Completion) (dates []time.Time, commented []Completion) {
	for _, c := range history {
		if c.Commented {
			commented = append(commented, c)
		} else {
			dates = append(dates, c.Date)
		}
	}
	return dates, commented
}

// MergeHistory rebuilds a unified history from the legacy wire shape. Plain
// dates come first so that equal-instant ties resolve to the plain entry.
func MergeHistory(dates []time.Time, commented []Completion) []Completion {
	history := make([]Completion, 0, len(dates)+len(commented))
	for _, d := range dates {
		history = append(history, Completion{Date: d})
	}
	for _, c := range commented {
		history = append(history, Completion{Date: c.Date, Comment: c.Comment, Commented: true})
	}
	return history
}
