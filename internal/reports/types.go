// Package reports summarizes the tracker state as of a moment: the headline
// counts, per-habit weekly progress and open work.
package reports

import (
	"time"

	"productivelife/internal/model"
	"productivelife/internal/streak"
)

// Report is a point-in-time summary.
type Report struct {
	Date        string                 `json:"date"`
	Stats       streak.Stats           `json:"stats"`
	Habits      []streak.HabitProgress `json:"habits"`
	Week        []DayHabits            `json:"week"`
	OpenTasks   []TaskLine             `json:"open_tasks"`
	Goals       GoalSummary            `json:"goals"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// DayHabits counts habit completions recorded on one calendar day.
type DayHabits struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// TaskLine is an incomplete task as listed in a report.
type TaskLine struct {
	Text      string         `json:"text"`
	Priority  model.Priority `json:"priority"`
	DueDate   string         `json:"due_date,omitempty"`
	Overdue   bool           `json:"overdue"`
	Repeating bool           `json:"repeating"`
}

// GoalSummary splits goals by type.
type GoalSummary struct {
	Daily  []GoalLine `json:"daily"`
	Weekly []GoalLine `json:"weekly"`
}

// GoalLine is a goal as listed in a report.
type GoalLine struct {
	Title    string         `json:"title"`
	Priority model.Priority `json:"priority"`
	Done     bool           `json:"done"`
}
