package streak

import (
	"sort"
	"time"

	"productivelife/internal/model"
)

// SortMode selects the task ordering.
type SortMode string

const (
	SortByDueDate  SortMode = "dueDate"
	SortByPriority SortMode = "priority"
)

// Next cycles between the two sort modes.
func (m SortMode) Next() SortMode {
	if m == SortByPriority {
		return SortByDueDate
	}
	return SortByPriority
}

// SortTasks returns a sorted copy of tasks. By due date, earliest first with
// undated tasks last; by priority, High before Medium before Low. Ties keep
// their original order.
func SortTasks(tasks []model.Task, mode SortMode) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a := sorted[i]
		b := sorted[j]

		if mode == SortByPriority {
			return a.Priority.Value() > b.Priority.Value()
		}

		// Undated tasks sink to the bottom.
		if a.DueDate == "" || b.DueDate == "" {
			return a.DueDate != "" && b.DueDate == ""
		}
		// YYYY-MM-DD compares lexically in date order.
		return a.DueDate < b.DueDate
	})

	return sorted
}

// IsOverdue reports whether dueDate falls before the start of now's day.
// An empty or unparseable due date is never overdue.
func IsOverdue(dueDate string, now time.Time) bool {
	if dueDate == "" {
		return false
	}
	due, err := model.ParseDate(dueDate, now.Location())
	if err != nil {
		return false
	}
	return due.Before(model.StartOfDay(now))
}
