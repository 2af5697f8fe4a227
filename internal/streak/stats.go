package streak

import (
	"time"

	"productivelife/internal/model"
)

// Stats are the headline counts shown above the lists.
type Stats struct {
	TasksActive    int `json:"tasks_active"`
	CompletedToday int `json:"completed_today"`
	HabitsDone     int `json:"habits_done"`
	HabitsTotal    int `json:"habits_total"`
	BestStreak     int `json:"best_streak"`
	GoalsDone      int `json:"goals_done"`
	GoalsTotal     int `json:"goals_total"`
	OverdueTasks   int `json:"overdue_tasks"`
}

// ComputeStats derives the headline counts from s as of now.
//
// CompletedToday counts finished non-repeating tasks, matching what the
// rollover leaves untouched.
func ComputeStats(s State, now time.Time) Stats {
	var st Stats
	for _, t := range s.Tasks {
		if !t.Completed {
			st.TasksActive++
			if IsOverdue(t.DueDate, now) {
				st.OverdueTasks++
			}
		}
		if t.Completed && !t.IsRepeating {
			st.CompletedToday++
		}
	}
	st.HabitsTotal = len(s.Habits)
	for _, h := range s.Habits {
		if h.CompletedToday {
			st.HabitsDone++
		}
		if h.Streak > st.BestStreak {
			st.BestStreak = h.Streak
		}
	}
	st.GoalsTotal = len(s.Goals)
	for _, g := range s.Goals {
		if g.Completed {
			st.GoalsDone++
		}
	}
	return st
}

// HabitProgress pairs a habit with its derived weekly numbers.
type HabitProgress struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Frequency      string `json:"frequency"`
	Streak         int    `json:"streak"`
	TrailingStreak int    `json:"trailing_streak"`
	Weekly         int    `json:"weekly"`
	DoneToday      bool   `json:"done_today"`
}

// Progress computes per-habit weekly progress in the order given.
func Progress(habits []model.Habit, now time.Time) []HabitProgress {
	today := model.Date(now)
	out := make([]HabitProgress, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitProgress{
			ID:             h.ID,
			Name:           h.Name,
			Frequency:      string(h.Frequency),
			Streak:         h.Streak,
			TrailingStreak: TrailingStreak(h.CompletedDates, today),
			Weekly:         WeeklyProgress(h, now),
			DoneToday:      h.CompletedToday,
		})
	}
	return out
}
