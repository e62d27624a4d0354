// Package completion implements the habit-completion rules: deciding whether
// a habit counts as done for the period containing a reference instant, and
// toggling a completion on or off consistently with those rules. Everything
// here is pure computation over an in-memory habit; persistence and
// serialization stay outside.
package completion

import (
	"math"
	"time"

	"habit-tracker/internal/model"
)

// civilDay truncates t to midnight of its calendar day in loc. A nil loc
// falls back to the process-local zone; callers that know the user's zone
// should always pass it explicitly.
func civilDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b. Rounding absorbs the odd
// hour a DST transition adds or removes between two midnights.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// WithinPeriod reports whether candidate falls inside the period of the given
// cadence that contains reference. Weekly is a rolling seven-day lookback
// ending on the reference day ("completed at least once in the trailing
// week"), not a calendar-aligned week. Unknown frequencies never match.
func WithinPeriod(freq model.Frequency, candidate, reference time.Time, loc *time.Location) bool {
	cand := civilDay(candidate, loc)
	ref := civilDay(reference, loc)

	switch freq {
	case model.FrequencyDaily:
		return cand.Equal(ref)
	case model.FrequencyWeekly:
		days := daysBetween(cand, ref)
		return days >= 0 && days < 7
	case model.FrequencyMonthly:
		return cand.Year() == ref.Year() && cand.Month() == ref.Month()
	default:
		return false
	}
}

// Active points at the in-period history entries found for each
// representation: Plain for legacy date-only entries, Commented for records
// carrying a comment. A value of -1 means no entry of that representation is
// active. A period can hold one of each when old and new representations were
// written for the same stretch; Toggle clears both in one call.
type Active struct {
	Plain     int
	Commented int
}

// Exists reports whether any representation has an active entry.
func (a Active) Exists() bool { return a.Plain >= 0 || a.Commented >= 0 }

// FindActive scans the habit's completion history and returns, per
// representation, the index of the most recent entry within the period
// containing reference. Entries with exactly equal instants keep the first
// one encountered, so results are deterministic for a given history order.
func FindActive(habit *model.Habit, reference time.Time, loc *time.Location) Active {
	active := Active{Plain: -1, Commented: -1}
	for i, c := range habit.Completions {
		if !WithinPeriod(habit.Frequency, c.Date, reference, loc) {
			continue
		}
		if c.Commented {
			if active.Commented < 0 || c.Date.After(habit.Completions[active.Commented].Date) {
				active.Commented = i
			}
		} else {
			if active.Plain < 0 || c.Date.After(habit.Completions[active.Plain].Date) {
				active.Plain = i
			}
		}
	}
	return active
}

// IsCompleted reports whether the habit has an active completion for the
// period containing reference. To-do/completed list bucketing keys off this.
func IsCompleted(habit *model.Habit, reference time.Time, loc *time.Location) bool {
	return FindActive(habit, reference, loc).Exists()
}

// CompletedOn reports whether any completion was recorded on the civil day
// containing day. Calendar views highlight individual days with a recorded
// event regardless of the habit's cadence, so the check is always
// daily-granularity.
func CompletedOn(habit *model.Habit, day time.Time, loc *time.Location) bool {
	for _, c := range habit.Completions {
		if WithinPeriod(model.FrequencyDaily, c.Date, day, loc) {
			return true
		}
	}
	return false
}

// LastCompleted returns the most recent completion instant across the whole
// history, and false when the habit has never been completed.
func LastCompleted(habit *model.Habit) (time.Time, bool) {
	var last time.Time
	found := false
	for _, c := range habit.Completions {
		if !found || c.Date.After(last) {
			last = c.Date
			found = true
		}
	}
	return last, found
}
