package completion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWithinPeriod(t *testing.T) {
	tests := []struct {
		name      string
		freq      model.Frequency
		candidate string
		reference string
		want      bool
	}{
		{"daily same day", model.FrequencyDaily, "2024-03-15T23:00:00Z", "2024-03-15T09:00:00Z", true},
		{"daily previous day", model.FrequencyDaily, "2024-03-14T23:59:00Z", "2024-03-15T09:00:00Z", false},
		{"daily next day", model.FrequencyDaily, "2024-03-16T00:00:00Z", "2024-03-15T23:59:00Z", false},

		{"weekly five days back", model.FrequencyWeekly, "2024-03-10T12:00:00Z", "2024-03-15T09:00:00Z", true},
		{"weekly same day", model.FrequencyWeekly, "2024-03-15T01:00:00Z", "2024-03-15T23:00:00Z", true},
		{"weekly six days back", model.FrequencyWeekly, "2024-03-09T12:00:00Z", "2024-03-15T09:00:00Z", true},
		{"weekly exactly seven days back", model.FrequencyWeekly, "2024-03-08T12:00:00Z", "2024-03-15T09:00:00Z", false},
		{"weekly one day in the future", model.FrequencyWeekly, "2024-03-16T12:00:00Z", "2024-03-15T09:00:00Z", false},

		{"monthly first of month", model.FrequencyMonthly, "2024-03-01T00:00:00Z", "2024-03-15T09:00:00Z", true},
		{"monthly previous month", model.FrequencyMonthly, "2024-02-29T23:59:00Z", "2024-03-15T09:00:00Z", false},
		{"monthly same month next year", model.FrequencyMonthly, "2023-03-15T09:00:00Z", "2024-03-15T09:00:00Z", false},

		{"unknown frequency", model.Frequency("yearly"), "2024-03-15T09:00:00Z", "2024-03-15T09:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinPeriod(tt.freq, date(tt.candidate), date(tt.reference), time.UTC)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithinPeriod_ZoneShiftsCivilDay(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 23:00 in Los Angeles is already the next UTC day.
	candidate := date("2024-03-15T23:00:00-07:00")
	reference := date("2024-03-15T12:00:00-07:00")

	assert.True(t, WithinPeriod(model.FrequencyDaily, candidate, reference, la))
	assert.False(t, WithinPeriod(model.FrequencyDaily, candidate, reference, time.UTC))
}

func TestFindActive_ReturnsBothRepresentations(t *testing.T) {
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		Completions: []model.Completion{
			{Date: date("2024-03-14T10:00:00Z")},
			{Date: date("2024-03-15T08:00:00Z")},
			{Date: date("2024-03-15T10:00:00Z"), Comment: "morning run", Commented: true},
		},
	}

	active := FindActive(habit, date("2024-03-15T12:00:00Z"), time.UTC)
	assert.Equal(t, 1, active.Plain)
	assert.Equal(t, 2, active.Commented)
	assert.True(t, active.Exists())
}

func TestFindActive_MostRecentPerRepresentation(t *testing.T) {
	habit := &model.Habit{
		Frequency: model.FrequencyWeekly,
		Completions: []model.Completion{
			{Date: date("2024-03-11T10:00:00Z")},
			{Date: date("2024-03-13T10:00:00Z")},
			{Date: date("2024-03-12T10:00:00Z")},
		},
	}

	active := FindActive(habit, date("2024-03-15T12:00:00Z"), time.UTC)
	assert.Equal(t, 1, active.Plain)
	assert.Equal(t, -1, active.Commented)
}

func TestFindActive_EqualInstantsKeepFirst(t *testing.T) {
	same := date("2024-03-15T10:00:00Z")
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		Completions: []model.Completion{
			{Date: same},
			{Date: same},
		},
	}

	active := FindActive(habit, date("2024-03-15T12:00:00Z"), time.UTC)
	assert.Equal(t, 0, active.Plain)
}

func TestFindActive_EmptyHistory(t *testing.T) {
	habit := &model.Habit{Frequency: model.FrequencyDaily}
	active := FindActive(habit, date("2024-03-15T12:00:00Z"), time.UTC)
	assert.False(t, active.Exists())
}

func TestIsCompleted(t *testing.T) {
	habit := &model.Habit{
		Frequency: model.FrequencyMonthly,
		Completions: []model.Completion{
			{Date: date("2024-03-01T10:00:00Z")},
		},
	}

	assert.True(t, IsCompleted(habit, date("2024-03-20T12:00:00Z"), time.UTC))
	assert.False(t, IsCompleted(habit, date("2024-04-01T12:00:00Z"), time.UTC))
}

func TestCompletedOn_AlwaysDailyGranularity(t *testing.T) {
	// A monthly habit still only highlights the days an event was recorded.
	habit := &model.Habit{
		Frequency: model.FrequencyMonthly,
		Completions: []model.Completion{
			{Date: date("2024-03-10T09:00:00Z")},
			{Date: date("2024-03-20T09:00:00Z"), Comment: "late", Commented: true},
		},
	}

	assert.True(t, CompletedOn(habit, date("2024-03-10T00:00:00Z"), time.UTC))
	assert.True(t, CompletedOn(habit, date("2024-03-20T00:00:00Z"), time.UTC))
	assert.False(t, CompletedOn(habit, date("2024-03-15T00:00:00Z"), time.UTC))
}

func TestLastCompleted(t *testing.T) {
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		Completions: []model.Completion{
			{Date: date("2024-01-01T10:00:00Z")},
			{Date: date("2024-02-01T10:00:00Z"), Comment: "x", Commented: true},
		},
	}

	last, ok := LastCompleted(habit)
	require.True(t, ok)
	assert.Equal(t, date("2024-02-01T10:00:00Z"), last)

	_, ok = LastCompleted(&model.Habit{})
	assert.False(t, ok)
}
