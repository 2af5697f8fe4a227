package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"productivelife/internal/model"
)

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSortTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Priority: model.PriorityLow, DueDate: "2025-03-12"},
		{ID: "b", Priority: model.PriorityHigh},
		{ID: "c", Priority: model.PriorityMedium, DueDate: "2025-03-01"},
		{ID: "d", Priority: model.PriorityHigh, DueDate: "2025-04-01"},
		{ID: "e", Priority: model.PriorityLow},
	}

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortByDueDate, []string{"c", "a", "d", "b", "e"}},
		{SortByPriority, []string{"b", "d", "c", "a", "e"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortTasks(tasks, tt.mode)))
		})
	}

	assert.Equal(t, "a", tasks[0].ID, "input order preserved")
}

func TestSortMode_Next(t *testing.T) {
	assert.Equal(t, SortByPriority, SortByDueDate.Next())
	assert.Equal(t, SortByDueDate, SortByPriority.Next())
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, time.Local)

	tests := []struct {
		due  string
		want bool
	}{
		{"", false},
		{"2025-03-09", true},
		{"2025-03-10", false},
		{"2025-03-11", false},
		{"junk", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOverdue(tt.due, now), tt.due)
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	s := State{
		Tasks: []model.Task{
			{ID: "1", Completed: false, DueDate: "2025-03-01"},
			{ID: "2", Completed: false},
			{ID: "3", Completed: true},
			{ID: "4", Completed: true, IsRepeating: true},
		},
		Habits: []model.Habit{
			{ID: "h1", Streak: 4, CompletedToday: true},
			{ID: "h2", Streak: 9},
			{ID: "h3"},
		},
		Goals: []model.Goal{
			{ID: "g1", Completed: true},
			{ID: "g2"},
		},
	}

	got := ComputeStats(s, now)

	assert.Equal(t, Stats{
		TasksActive:    2,
		CompletedToday: 1,
		HabitsDone:     1,
		HabitsTotal:    3,
		BestStreak:     9,
		GoalsDone:      1,
		GoalsTotal:     2,
		OverdueTasks:   1,
	}, got)
}

func TestProgress(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	habits := []model.Habit{
		{ID: "h1", Name: "Run", Frequency: model.FrequencyDaily, Streak: 1, CompletedDates: []string{"2025-03-09", "2025-03-10"}, CompletedToday: true},
	}

	got := Progress(habits, now)

	if assert.Len(t, got, 1) {
		assert.Equal(t, 2, got[0].TrailingStreak)
		assert.Equal(t, 2, got[0].Weekly)
		assert.Equal(t, 1, got[0].Streak)
		assert.True(t, got[0].DoneToday)
	}
}
