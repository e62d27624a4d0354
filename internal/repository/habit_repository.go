package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// ErrConflict is returned when a save loses the optimistic version check:
// another writer persisted the habit after this snapshot was read. The caller
// surfaces it as a retryable conflict; a toggle is never retried
// automatically because replaying it would flip the state back.
var ErrConflict = errors.New("habit was modified concurrently")

// HabitRepository handles CRUD for habits and their completion history.
type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Create(ctx context.Context, habit *model.Habit) error {
	if err := r.db.WithContext(ctx).Create(habit).Error; err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Preload("Completions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("importance DESC, created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *HabitRepository) FindByID(ctx context.Context, userID, habitID uint) (*model.Habit, error) {
	var habit model.Habit
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, habitID).
		Preload("Completions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// Save persists a modified habit snapshot. The update is conditional on the
// version the snapshot was loaded with, which serializes concurrent
// read-modify-write cycles per habit; a mismatch returns ErrConflict and
// writes nothing. The completion history is rewritten wholesale inside the
// same transaction, insertion order preserved by ascending row ids.
func (r *HabitRepository) Save(ctx context.Context, habit *model.Habit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Habit{}).
			Where("id = ? AND version = ?", habit.ID, habit.Version).
			Updates(map[string]interface{}{
				"name":           habit.Name,
				"importance":     habit.Importance,
				"allow_comments": habit.AllowComments,
				"archived":       habit.Archived,
				"version":        habit.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("update habit: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if err := tx.Where("habit_id = ?", habit.ID).Delete(&model.Completion{}).Error; err != nil {
			return fmt.Errorf("clear completions: %w", err)
		}
		for i := range habit.Completions {
			habit.Completions[i].ID = 0
			habit.Completions[i].HabitID = habit.ID
		}
		if len(habit.Completions) > 0 {
			if err := tx.Create(&habit.Completions).Error; err != nil {
				return fmt.Errorf("save completions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	habit.Version++
	return nil
}

// Delete removes a habit and its completion history for the given user.
func (r *HabitRepository) Delete(ctx context.Context, userID, habitID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id = ?", userID, habitID).Delete(&model.Habit{})
		if res.Error != nil {
			return fmt.Errorf("delete habit: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("habit_id = ?", habitID).Delete(&model.Completion{}).Error; err != nil {
			return fmt.Errorf("delete completions: %w", err)
		}
		return nil
	})
}
