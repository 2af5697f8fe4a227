package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivelife/internal/model"
)

func rolloverFixture() State {
	done := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)
	return State{
		Habits: []model.Habit{
			{ID: "h1", Streak: 3, CompletedToday: true, CompletedDates: []string{"2025-03-09"}, LastCompleted: "2025-03-09"},
			{ID: "h2", Streak: 0, CompletedDates: []string{}},
		},
		Tasks: []model.Task{
			{ID: "t1", Text: "water plants", Completed: true, IsRepeating: true, Priority: model.PriorityLow},
			{ID: "t2", Text: "file taxes", Completed: true, Priority: model.PriorityHigh},
			{ID: "t3", Text: "read", Priority: model.PriorityMedium},
		},
		Goals: []model.Goal{
			{ID: "g1", Type: model.GoalDaily, Completed: true, CompletedAt: &done},
			{ID: "g2", Type: model.GoalWeekly, Completed: true, CompletedAt: &done},
		},
	}
}

func TestDailyRollover_ClearsDailyFlags(t *testing.T) {
	res := DailyRollover(rolloverFixture(), today, "2025-03-09")

	require.True(t, res.Applied)
	assert.Equal(t, today, res.LastReset)
	assert.Equal(t, 1, res.HabitsCleared)
	assert.Equal(t, 1, res.TasksCleared)
	assert.Equal(t, 1, res.GoalsCleared)
	assert.True(t, res.Changed())

	h := res.State.Habits[0]
	assert.False(t, h.CompletedToday)
	assert.Equal(t, 3, h.Streak, "streak untouched")
	assert.Equal(t, []string{"2025-03-09"}, h.CompletedDates)
	assert.Equal(t, "2025-03-09", h.LastCompleted)

	assert.False(t, res.State.Tasks[0].Completed, "repeating task resets")
	assert.True(t, res.State.Tasks[1].Completed, "one-off task survives")

	assert.False(t, res.State.Goals[0].Completed)
	assert.Nil(t, res.State.Goals[0].CompletedAt)
	assert.True(t, res.State.Goals[1].Completed, "weekly goal survives")
	assert.NotNil(t, res.State.Goals[1].CompletedAt)
}

func TestDailyRollover_NoMarkerRuns(t *testing.T) {
	res := DailyRollover(rolloverFixture(), today, "")
	assert.True(t, res.Applied)
	assert.Equal(t, today, res.LastReset)
}

func TestDailyRollover_SameDayIsNoop(t *testing.T) {
	in := rolloverFixture()

	res := DailyRollover(in, today, today)

	assert.False(t, res.Applied)
	assert.False(t, res.Changed())
	assert.Equal(t, in, res.State)
}

func TestDailyRollover_Idempotent(t *testing.T) {
	first := DailyRollover(rolloverFixture(), today, "2025-03-01")
	second := DailyRollover(first.State, today, first.LastReset)

	assert.False(t, second.Applied)
	assert.Equal(t, first.State, second.State)
	assert.Equal(t, first.LastReset, second.LastReset)
}

func TestDailyRollover_DoesNotAliasInput(t *testing.T) {
	in := rolloverFixture()

	res := DailyRollover(in, today, "")
	res.State.Habits[0].CompletedDates[0] = "changed"

	assert.True(t, in.Habits[0].CompletedToday)
	assert.True(t, in.Tasks[0].Completed)
	assert.Equal(t, "2025-03-09", in.Habits[0].CompletedDates[0])
	assert.NotNil(t, in.Goals[0].CompletedAt)
}

func TestDailyRollover_Empty(t *testing.T) {
	res := DailyRollover(State{}, today, "")
	assert.True(t, res.Applied)
	assert.False(t, res.Changed())
	assert.Empty(t, res.State.Habits)
}

func TestDailyRollover_CountsDoneTodayOnOneOffTasks(t *testing.T) {
	in := State{Tasks: []model.Task{
		{ID: "t1", Text: "call bank", Completed: true, CompletedToday: true, Priority: model.PriorityLow},
		{ID: "t2", Text: "old", Completed: true, Priority: model.PriorityLow},
	}}

	res := DailyRollover(in, today, "2025-03-09")

	assert.Equal(t, 1, res.TasksCleared)
	assert.True(t, res.Changed(), "a cleared done-today flag must be persisted")
	assert.False(t, res.State.Tasks[0].CompletedToday)
	assert.True(t, res.State.Tasks[0].Completed)
}
