package completion

import (
	"errors"
	"time"

	"habit-tracker/internal/model"
)

// ErrHabitArchived is returned by Toggle when the habit is archived; archived
// habits keep their history but accept no further tracking.
var ErrHabitArchived = errors.New("habit is archived")

// Action reports what a toggle did, for caller-side feedback.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// Toggle flips the completion state of the period containing reference.
//
// When an active completion exists it is removed — both entries when the
// period holds one of each representation, a migration artifact the engine
// must clear in a single call. When none exists a new entry is appended:
// commented iff the habit allows comments and a non-empty comment was
// supplied, a plain date otherwise. Comments on habits that do not allow them
// are silently dropped rather than rejected.
//
// The history slice is replaced, never mutated in place, so the caller's
// pre-toggle snapshot stays intact. Toggling twice with the same inputs
// restores the original completion set (checkbox semantics, deliberately not
// idempotent).
func Toggle(habit *model.Habit, reference time.Time, comment string, loc *time.Location) (Action, error) {
	if habit.Archived {
		return "", ErrHabitArchived
	}

	active := FindActive(habit, reference, loc)
	if active.Exists() {
		next := make([]model.Completion, 0, len(habit.Completions))
		for i, c := range habit.Completions {
			if i == active.Plain || i == active.Commented {
				continue
			}
			next = append(next, c)
		}
		habit.Completions = next
		return ActionRemoved, nil
	}

	entry := model.Completion{HabitID: habit.ID, Date: reference}
	if habit.AllowComments && comment != "" {
		entry.Comment = comment
		entry.Commented = true
	}
	next := make([]model.Completion, len(habit.Completions), len(habit.Completions)+1)
	copy(next, habit.Completions)
	habit.Completions = append(next, entry)
	return ActionAdded, nil
}
