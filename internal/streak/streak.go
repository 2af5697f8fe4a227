// Package streak holds the habit, task and goal state transitions: toggling a
// habit's completion, the once-per-day rollover, and the derived counts shown
// to the user. Everything here is pure; callers own persistence.
package streak

import (
	"time"

	"productivelife/internal/model"
)

// Yesterday returns the calendar date before today. A malformed today yields "".
func Yesterday(today string) string {
	t, err := time.Parse(model.DateLayout, today)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(model.DateLayout)
}

// ToggleHabit flips h's done-today flag for the given calendar date and
// returns the updated copy. h itself is not modified.
//
// Marking done records today (once) and continues the streak when yesterday is
// recorded or the streak is zero; any other toggle-on restarts it at 1. The
// stored streak is therefore not recomputed from history, see TrailingStreak.
// Unmarking removes today and decrements the streak, floored at zero, leaving
// LastCompleted alone.
func ToggleHabit(h model.Habit, today string) model.Habit {
	out := h.Clone()
	if out.CompletedDates == nil {
		out.CompletedDates = []string{}
	}
	prev := h.Streak
	if prev < 0 {
		prev = 0
	}

	if !h.CompletedToday {
		if !h.HasDate(today) {
			out.CompletedDates = append(out.CompletedDates, today)
		}
		if h.HasDate(Yesterday(today)) || prev == 0 {
			out.Streak = prev + 1
		} else {
			out.Streak = 1
		}
		out.CompletedToday = true
		out.LastCompleted = today
		return out
	}

	out.CompletedDates = removeDate(out.CompletedDates, today)
	out.Streak = prev - 1
	if out.Streak < 0 {
		out.Streak = 0
	}
	out.CompletedToday = false
	return out
}

func removeDate(dates []string, date string) []string {
	kept := dates[:0]
	for _, d := range dates {
		if d != date {
			kept = append(kept, d)
		}
	}
	return kept
}

// TrailingStreak counts the run of consecutive recorded days ending today. When
// today is not recorded yet the run ending yesterday is counted instead, so an
// unbroken streak does not read as zero before the habit is done for the day.
func TrailingStreak(completedDates []string, today string) int {
	seen := make(map[string]struct{}, len(completedDates))
	for _, d := range completedDates {
		seen[d] = struct{}{}
	}
	day, err := time.Parse(model.DateLayout, today)
	if err != nil {
		return 0
	}
	if _, ok := seen[today]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for {
		if _, ok := seen[day.Format(model.DateLayout)]; !ok {
			return count
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
}

// WeeklyCount returns how many distinct recorded dates fall strictly after
// now minus seven days. Dates are read as midnight in now's location.
func WeeklyCount(h model.Habit, now time.Time) int {
	cutoff := now.Add(-7 * 24 * time.Hour)
	seen := make(map[string]struct{}, len(h.CompletedDates))
	count := 0
	for _, d := range h.CompletedDates {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		t, err := model.ParseDate(d, now.Location())
		if err != nil {
			continue
		}
		if t.After(cutoff) {
			count++
		}
	}
	return count
}

// WeeklyProgress is WeeklyCount clamped to [0,7] for display.
func WeeklyProgress(h model.Habit, now time.Time) int {
	n := WeeklyCount(h, now)
	if n > 7 {
		return 7
	}
	return n
}
