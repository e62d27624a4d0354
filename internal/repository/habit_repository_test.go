package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := NewDB(dsn)
	require.NoError(t, err)
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{Username: "sam", PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestHabitRepository_SaveRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	habit := &model.Habit{UserID: user.ID, Name: "Read", Frequency: model.FrequencyDaily}
	require.NoError(t, repo.Create(ctx, habit))

	habit.Completions = []model.Completion{
		{Date: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), Comment: "before bed", Commented: true},
	}
	require.NoError(t, repo.Save(ctx, habit))

	loaded, err := repo.FindByID(ctx, user.ID, habit.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Completions, 2)
	// Insertion order survives the rewrite.
	assert.False(t, loaded.Completions[0].Commented)
	assert.True(t, loaded.Completions[1].Commented)
	assert.Equal(t, "before bed", loaded.Completions[1].Comment)
	assert.Equal(t, 1, loaded.Version)
}

func TestHabitRepository_SaveConflict(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	habit := &model.Habit{UserID: user.ID, Name: "Run", Frequency: model.FrequencyDaily}
	require.NoError(t, repo.Create(ctx, habit))

	first, err := repo.FindByID(ctx, user.ID, habit.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, user.ID, habit.ID)
	require.NoError(t, err)

	first.Name = "Run far"
	require.NoError(t, repo.Save(ctx, first))

	// The stale snapshot loses the version check and must not overwrite.
	second.Name = "Run fast"
	err = repo.Save(ctx, second)
	require.ErrorIs(t, err, ErrConflict)

	loaded, err := repo.FindByID(ctx, user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run far", loaded.Name)
}

func TestHabitRepository_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	habit := &model.Habit{UserID: user.ID, Name: "Stretch", Frequency: model.FrequencyWeekly}
	require.NoError(t, repo.Create(ctx, habit))

	_, err := repo.FindByID(ctx, user.ID+1, habit.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, user.ID+1, habit.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRefreshTokenRepository_PurgeExpired(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &model.RefreshToken{ID: "old", UserID: user.ID, ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.RefreshToken{ID: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour)}))

	removed, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.Find(ctx, "old")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.Find(ctx, "live")
	assert.NoError(t, err)
}
