package streak

import "productivelife/internal/model"

// State is the set of collections touched by the daily rollover.
type State struct {
	Habits []model.Habit
	Tasks  []model.Task
	Goals  []model.Goal
}

// Clone deep-copies every collection in s.
func (s State) Clone() State {
	out := State{
		Habits: make([]model.Habit, len(s.Habits)),
		Tasks:  append([]model.Task(nil), s.Tasks...),
		Goals:  make([]model.Goal, len(s.Goals)),
	}
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	for i, g := range s.Goals {
		out.Goals[i] = g.Clone()
	}
	return out
}

// RolloverResult is the outcome of DailyRollover.
type RolloverResult struct {
	State     State
	LastReset string
	// Applied is false when the marker already matched today.
	Applied bool

	HabitsCleared int
	TasksCleared  int
	GoalsCleared  int
}

// Changed reports whether the rollover altered any entity.
func (r RolloverResult) Changed() bool {
	return r.HabitsCleared+r.TasksCleared+r.GoalsCleared > 0
}

// DailyRollover clears the per-day flags once per calendar day.
//
// When lastReset equals today the input is returned as is. Otherwise every
// habit loses its done-today flag, repeating tasks become incomplete and
// daily goals are reopened. Streaks, completion dates and weekly goals are
// left alone. The returned state never aliases the input.
func DailyRollover(s State, today, lastReset string) RolloverResult {
	out := s.Clone()
	if lastReset == today {
		return RolloverResult{State: out, LastReset: lastReset}
	}

	res := RolloverResult{LastReset: today, Applied: true}
	for i := range out.Habits {
		if out.Habits[i].CompletedToday {
			res.HabitsCleared++
		}
		out.Habits[i].CompletedToday = false
	}
	for i := range out.Tasks {
		t := &out.Tasks[i]
		cleared := t.CompletedToday
		if t.IsRepeating && t.Completed {
			t.Completed = false
			cleared = true
		}
		t.CompletedToday = false
		if cleared {
			res.TasksCleared++
		}
	}
	for i := range out.Goals {
		g := &out.Goals[i]
		if g.Type != model.GoalDaily {
			continue
		}
		if g.Completed {
			res.GoalsCleared++
		}
		g.Completed = false
		g.CompletedAt = nil
	}
	res.State = out
	return res
}
