package reports

import (
	"time"

	"productivelife/internal/model"
	"productivelife/internal/streak"
)

// Source provides the state a report is built from. *storage.Store satisfies it.
type Source interface {
	State() streak.State
	Now() time.Time
}

// Generator creates reports from a Source.
type Generator struct {
	src Source
}

// NewGenerator creates a new report generator.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// Generate builds the report as of the source clock.
func (g *Generator) Generate() *Report {
	return Build(g.src.State(), g.src.Now())
}

// Build assembles a report from st as of now.
func Build(st streak.State, now time.Time) *Report {
	r := &Report{
		Date:        model.Date(now),
		Stats:       streak.ComputeStats(st, now),
		Habits:      streak.Progress(st.Habits, now),
		Week:        lastSevenDays(st.Habits, now),
		GeneratedAt: now,
	}

	for _, t := range streak.SortTasks(st.Tasks, streak.SortByDueDate) {
		if t.Completed {
			continue
		}
		r.OpenTasks = append(r.OpenTasks, TaskLine{
			Text:      t.Text,
			Priority:  t.Priority,
			DueDate:   t.DueDate,
			Overdue:   streak.IsOverdue(t.DueDate, now),
			Repeating: t.IsRepeating,
		})
	}

	for _, gl := range st.Goals {
		line := GoalLine{Title: gl.Title, Priority: gl.Priority, Done: gl.Completed}
		if gl.Type == model.GoalWeekly {
			r.Goals.Weekly = append(r.Goals.Weekly, line)
		} else {
			r.Goals.Daily = append(r.Goals.Daily, line)
		}
	}
	return r
}

// lastSevenDays counts completions for each of the seven days ending today,
// oldest first.
func lastSevenDays(habits []model.Habit, now time.Time) []DayHabits {
	today := model.StartOfDay(now)
	days := make([]DayHabits, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		date := model.Date(d)
		day := DayHabits{Date: date, DayOfWeek: d.Weekday().String()[:3], Total: len(habits)}
		for _, h := range habits {
			if h.HasDate(date) {
				day.Completed++
			}
		}
		days = append(days, day)
	}
	return days
}
