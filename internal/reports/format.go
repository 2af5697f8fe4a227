package reports

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatJSON formats a report as indented JSON.
func FormatJSON(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

var titleCase = cases.Title(language.English)

// FormatMarkdown renders a report for humans.
func FormatMarkdown(report *Report) string {
	var b strings.Builder
	st := report.Stats

	fmt.Fprintf(&b, "# ProductiveLife report for %s\n\n", report.Date)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Tasks active: %d", st.TasksActive)
	if st.OverdueTasks > 0 {
		fmt.Fprintf(&b, " (%d overdue)", st.OverdueTasks)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Completed today: %d\n", st.CompletedToday)
	fmt.Fprintf(&b, "- Habits done: %d/%d\n", st.HabitsDone, st.HabitsTotal)
	fmt.Fprintf(&b, "- Best streak: %d\n", st.BestStreak)
	if st.GoalsTotal > 0 {
		fmt.Fprintf(&b, "- Goals done: %d/%d\n", st.GoalsDone, st.GoalsTotal)
	}

	if len(report.Habits) > 0 {
		b.WriteString("\n## Habits\n\n")
		b.WriteString("| Habit | Frequency | Today | Streak | Run | Last 7 days |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, h := range report.Habits {
			today := " "
			if h.DoneToday {
				today = "x"
			}
			fmt.Fprintf(&b, "| %s | %s | [%s] | %d | %d | %d/7 |\n",
				escapeCell(h.Name), titleCase.String(h.Frequency), today, h.Streak, h.TrailingStreak, h.Weekly)
		}

		b.WriteString("\n")
		for _, d := range report.Week {
			fmt.Fprintf(&b, "%s %s  %s %d/%d\n", d.DayOfWeek, d.Date, bar(d.Completed, d.Total, 10), d.Completed, d.Total)
		}
	}

	if len(report.OpenTasks) > 0 {
		b.WriteString("\n## Open tasks\n\n")
		for _, t := range report.OpenTasks {
			fmt.Fprintf(&b, "- [ ] %s (%s", t.Text, t.Priority)
			if t.DueDate != "" {
				fmt.Fprintf(&b, ", due %s", t.DueDate)
			}
			if t.Overdue {
				b.WriteString(", overdue")
			}
			if t.Repeating {
				b.WriteString(", repeats")
			}
			b.WriteString(")\n")
		}
	}

	writeGoals(&b, "Daily goals", report.Goals.Daily)
	writeGoals(&b, "Weekly goals", report.Goals.Weekly)
	return b.String()
}

func writeGoals(b *strings.Builder, title string, goals []GoalLine) {
	if len(goals) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, g := range goals {
		mark := " "
		if g.Done {
			mark = "x"
		}
		fmt.Fprintf(b, "- [%s] %s (%s)\n", mark, g.Title, g.Priority)
	}
}

func bar(n, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := n * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
