package reports

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"productivelife/internal/model"
	"productivelife/internal/streak"
)

type staticSource struct {
	st  streak.State
	now time.Time
}

func (s staticSource) State() streak.State { return s.st }
func (s staticSource) Now() time.Time      { return s.now }

func sampleState() streak.State {
	return streak.State{
		Habits: []model.Habit{
			{ID: "h1", Name: "Run", Frequency: model.FrequencyDaily, Streak: 3, CompletedToday: true,
				CompletedDates: []string{"2025-03-08", "2025-03-09", "2025-03-10"}},
			{ID: "h2", Name: "Read | write", Frequency: model.FrequencyWeekly, CompletedDates: []string{"2025-03-09"}},
		},
		Tasks: []model.Task{
			{ID: "t1", Text: "Pay rent", Priority: model.PriorityHigh, DueDate: "2025-03-01"},
			{ID: "t2", Text: "Done already", Completed: true, Priority: model.PriorityLow},
			{ID: "t3", Text: "Tidy desk", Priority: model.PriorityLow, IsRepeating: true},
		},
		Goals: []model.Goal{
			{ID: "g1", Title: "Inbox zero", Type: model.GoalDaily, Priority: model.PriorityMedium, Completed: true},
			{ID: "g2", Title: "Gym x3", Type: model.GoalWeekly, Priority: model.PriorityHigh},
		},
	}
}

func TestGenerate(t *testing.T) {
	now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local)
	r := NewGenerator(staticSource{st: sampleState(), now: now}).Generate()

	if r.Date != "2025-03-10" {
		t.Errorf("Date = %q", r.Date)
	}
	if r.Stats.TasksActive != 2 || r.Stats.HabitsDone != 1 || r.Stats.BestStreak != 3 || r.Stats.OverdueTasks != 1 {
		t.Errorf("Stats = %+v", r.Stats)
	}
	if len(r.OpenTasks) != 2 || r.OpenTasks[0].Text != "Pay rent" || !r.OpenTasks[0].Overdue {
		t.Errorf("OpenTasks = %+v", r.OpenTasks)
	}
	if len(r.Goals.Daily) != 1 || len(r.Goals.Weekly) != 1 {
		t.Errorf("Goals = %+v", r.Goals)
	}

	if len(r.Week) != 7 {
		t.Fatalf("len(Week) = %d, want 7", len(r.Week))
	}
	last := r.Week[6]
	if last.Date != "2025-03-10" || last.Completed != 1 || last.Total != 2 {
		t.Errorf("today's column = %+v", last)
	}
	if r.Week[5].Completed != 2 {
		t.Errorf("yesterday's column = %+v", r.Week[5])
	}
	if r.Week[0].Date != "2025-03-04" {
		t.Errorf("first column = %+v", r.Week[0])
	}
}

func TestFormatMarkdown(t *testing.T) {
	now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local)
	out := FormatMarkdown(Build(sampleState(), now))

	wants := []string{
		"# ProductiveLife report for 2025-03-10",
		"- Tasks active: 2 (1 overdue)",
		"- Habits done: 1/2",
		"- Best streak: 3",
		"- Goals done: 1/2",
		"| Run | Daily | [x] | 3 | 3 | 3/7 |",
		`| Read \| write | Weekly | [ ] | 0 | 1 | 1/7 |`,
		"- [ ] Pay rent (High, due 2025-03-01, overdue)",
		"- [ ] Tidy desk (Low, repeats)",
		"## Daily goals",
		"- [x] Inbox zero (Medium)",
		"- [ ] Gym x3 (High)",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestFormatMarkdown_Empty(t *testing.T) {
	out := FormatMarkdown(Build(streak.State{}, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)))
	if strings.Contains(out, "## Habits") || strings.Contains(out, "## Open tasks") {
		t.Errorf("empty report should omit sections:\n%s", out)
	}
	if !strings.Contains(out, "- Habits done: 0/0") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestFormatJSON(t *testing.T) {
	now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	data, err := FormatJSON(Build(sampleState(), now))
	if err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	stats, ok := decoded["stats"].(map[string]any)
	if !ok {
		t.Fatalf("stats missing: %s", data)
	}
	if stats["best_streak"] != float64(3) {
		t.Errorf("best_streak = %v", stats["best_streak"])
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		n, total int
		want     string
	}{
		{0, 0, "░░░░"},
		{1, 2, "██░░"},
		{2, 2, "████"},
	}
	for _, tt := range tests {
		if got := bar(tt.n, tt.total, 4); got != tt.want {
			t.Errorf("bar(%d,%d) = %q, want %q", tt.n, tt.total, got, tt.want)
		}
	}
}
