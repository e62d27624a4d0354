package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"habit-tracker/internal/completion"
	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// HabitInput represents data required to create a habit.
type HabitInput struct {
	Name          string          `validate:"required"`
	Frequency     model.Frequency `validate:"required,oneof=daily weekly monthly"`
	Importance    int             `validate:"gte=-10,lte=10"`
	AllowComments bool
}

// HabitUpdate is a partial update of the mutable metadata. Nil fields are
// left untouched; owner and frequency are never editable.
type HabitUpdate struct {
	Name          *string `validate:"omitempty,min=1"`
	Importance    *int    `validate:"omitempty,gte=-10,lte=10"`
	AllowComments *bool
}

// ToggleInput carries the caller-supplied reference instant for a toggle. The
// client knows the user's true wall clock, so the server never substitutes
// its own time. TimeZone is an optional IANA name; when present it wins over
// the ambient process zone.
type ToggleInput struct {
	Date     time.Time
	Comment  string
	TimeZone string
}

// HabitService wraps habit-related business logic.
type HabitService struct {
	habitRepo *repository.HabitRepository
}

func NewHabitService(habitRepo *repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

func (s *HabitService) Create(ctx context.Context, userID uint, input HabitInput) (*model.Habit, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}

	habit := model.Habit{
		UserID:        userID,
		Name:          input.Name,
		Frequency:     input.Frequency,
		Importance:    input.Importance,
		AllowComments: input.AllowComments,
	}

	if err := s.habitRepo.Create(ctx, &habit); err != nil {
		return nil, err
	}

	return &habit, nil
}

func (s *HabitService) List(ctx context.Context, userID uint) ([]model.Habit, error) {
	return s.habitRepo.ListByUser(ctx, userID)
}

func (s *HabitService) Get(ctx context.Context, userID, habitID uint) (*model.Habit, error) {
	habit, err := s.habitRepo.FindByID(ctx, userID, habitID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return habit, err
}

// Toggle flips the completion state of the habit's current period around the
// caller-supplied instant and persists the result. The save is conditional
// on the loaded version; on repository.ErrConflict the caller decides whether
// to retry, the service never replays a toggle on its own.
func (s *HabitService) Toggle(ctx context.Context, userID, habitID uint, input ToggleInput) (*model.Habit, completion.Action, error) {
	loc, err := resolveZone(input.TimeZone)
	if err != nil {
		return nil, "", err
	}

	habit, err := s.Get(ctx, userID, habitID)
	if err != nil {
		return nil, "", err
	}

	action, err := completion.Toggle(habit, input.Date, input.Comment, loc)
	if err != nil {
		return nil, "", err
	}

	if err := s.habitRepo.Save(ctx, habit); err != nil {
		return nil, "", err
	}
	return habit, action, nil
}

// ToggleArchive flips the archived flag. Completion history is untouched;
// archiving only blocks further toggles.
func (s *HabitService) ToggleArchive(ctx context.Context, userID, habitID uint) (*model.Habit, error) {
	habit, err := s.Get(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.Archived = !habit.Archived
	if err := s.habitRepo.Save(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Edit applies a partial metadata update.
func (s *HabitService) Edit(ctx context.Context, userID, habitID uint, update HabitUpdate) (*model.Habit, error) {
	if err := checkStruct(update); err != nil {
		return nil, err
	}

	habit, err := s.Get(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		habit.Name = *update.Name
	}
	if update.Importance != nil {
		habit.Importance = *update.Importance
	}
	if update.AllowComments != nil {
		habit.AllowComments = *update.AllowComments
	}

	if err := s.habitRepo.Save(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// HabitStatus is the evaluated completion state of a habit relative to a
// reference instant, for to-do/completed bucketing.
type HabitStatus struct {
	Completed     bool
	LastCompleted *time.Time
}

// Evaluate derives the habit's completion status around the caller-supplied
// reference instant. Pure read; nothing is persisted.
func (s *HabitService) Evaluate(habit *model.Habit, reference time.Time, timeZone string) (HabitStatus, error) {
	loc, err := resolveZone(timeZone)
	if err != nil {
		return HabitStatus{}, err
	}
	status := HabitStatus{Completed: completion.IsCompleted(habit, reference, loc)}
	if last, ok := completion.LastCompleted(habit); ok {
		status.LastCompleted = &last
	}
	return status, nil
}

// CompletedDays lists the days of the given civil month on which the habit
// recorded any completion, for calendar rendering. Always daily-granularity
// regardless of the habit's cadence.
func (s *HabitService) CompletedDays(ctx context.Context, userID, habitID uint, year int, month time.Month, timeZone string) ([]int, error) {
	if month < time.January || month > time.December {
		return nil, validationErrorf("invalid month %d", month)
	}
	loc, err := resolveZone(timeZone)
	if err != nil {
		return nil, err
	}

	habit, err := s.Get(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	zone := loc
	if zone == nil {
		zone = time.Local
	}
	days := []int{}
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, zone).Day()
	for d := 1; d <= lastDay; d++ {
		if completion.CompletedOn(habit, time.Date(year, month, d, 12, 0, 0, 0, zone), loc) {
			days = append(days, d)
		}
	}
	return days, nil
}

func (s *HabitService) Delete(ctx context.Context, userID, habitID uint) error {
	err := s.habitRepo.Delete(ctx, userID, habitID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// resolveZone loads the caller-supplied IANA zone. An empty name returns nil,
// which lets the evaluator fall back to the ambient process zone.
func resolveZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, validationErrorf("unknown time zone %q", name)
	}
	return loc, nil
}
