package ui

import (
	"context"
	"strings"
	"testing"

	"productivelife/internal/model"
	"productivelife/internal/storage"
	"productivelife/internal/streak"
)

func newTestTaskPane(t *testing.T) (*TaskPane, *storage.Store) {
	t.Helper()
	setupTest(t)
	store, _ := createTestStore(t)
	pane := NewTaskPane(context.Background(), store, createTestStyles(), nil)
	pane.SetSize(60, 20)
	return pane, store
}

func TestTaskPane_AddFlow(t *testing.T) {
	pane, store := newTestTaskPane(t)

	pane.Update(press("a"))
	if !pane.IsAdding() {
		t.Fatal("expected form to open on 'a'")
	}

	cmd := fill(pane, "Write report", "high", "2025-03-12", "y")
	if pane.IsAdding() {
		t.Error("expected form to close after the last field")
	}
	drain(t, pane, cmd)

	tasks := store.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("store has %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Text != "Write report" || got.Priority != model.PriorityHigh || got.DueDate != "2025-03-12" || !got.IsRepeating {
		t.Errorf("added task = %+v", got)
	}
	if len(pane.tasks) != 1 {
		t.Errorf("pane shows %d tasks, want 1", len(pane.tasks))
	}
}

func TestTaskPane_AddDefaults(t *testing.T) {
	pane, store := newTestTaskPane(t)

	pane.Update(press("a"))
	drain(t, pane, fill(pane, "Call mom", "", "", ""))

	tasks := store.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("store has %d tasks, want 1", len(tasks))
	}
	if tasks[0].Priority != model.PriorityMedium || tasks[0].DueDate != "" || tasks[0].IsRepeating {
		t.Errorf("task = %+v, want medium priority, no due date, not repeating", tasks[0])
	}
}

func TestTaskPane_AddRejectsInvalidFields(t *testing.T) {
	pane, _ := newTestTaskPane(t)

	pane.Update(press("a"))
	fill(pane, "Task", "urgent")
	if !pane.IsAdding() {
		t.Fatal("form closed on invalid priority")
	}
	if !strings.Contains(pane.View(), "Priority must be low, medium or high") {
		t.Errorf("view missing priority error:\n%s", pane.View())
	}

	pane.form.input.SetValue("low")
	fill(pane, "")
	fill(pane, "03/12/2025")
	if !strings.Contains(pane.View(), "Due date must be YYYY-MM-DD") {
		t.Errorf("view missing due date error:\n%s", pane.View())
	}
}

func TestTaskPane_EmptyTextCancels(t *testing.T) {
	pane, store := newTestTaskPane(t)

	pane.Update(press("a"))
	if cmd := fill(pane, ""); cmd != nil {
		t.Error("expected no command when the form is canceled")
	}
	if pane.IsAdding() {
		t.Error("expected empty text to cancel the form")
	}
	if len(store.Tasks()) != 0 {
		t.Error("expected no task to be added")
	}
}

func TestTaskPane_ToggleAndEdit(t *testing.T) {
	pane, store := newTestTaskPane(t)
	ctx := context.Background()
	if _, err := store.AddTask(ctx, storage.NewTask{Text: "Draft"}); err != nil {
		t.Fatal(err)
	}
	drain(t, pane, pane.LoadTasksCmd())

	drain(t, pane, pane.Update(press(" ")))
	if !store.Tasks()[0].Completed {
		t.Error("expected space to complete the task")
	}

	pane.Update(press("e"))
	if pane.form.input.Value() != "Draft" {
		t.Errorf("edit form value = %q, want the current text", pane.form.input.Value())
	}
	pane.form.input.SetValue("Final draft")
	drain(t, pane, pane.Update(press("enter")))

	got := store.Tasks()[0]
	if got.Text != "Final draft" || !got.Completed {
		t.Errorf("edited task = %+v, want new text and unchanged completion", got)
	}
}

func TestTaskPane_SortToggle(t *testing.T) {
	pane, store := newTestTaskPane(t)
	ctx := context.Background()
	for _, in := range []storage.NewTask{
		{Text: "low soon", Priority: model.PriorityLow, DueDate: "2025-03-11"},
		{Text: "high later", Priority: model.PriorityHigh, DueDate: "2025-04-01"},
	} {
		if _, err := store.AddTask(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	drain(t, pane, pane.LoadTasksCmd())

	if pane.SortMode() != streak.SortByDueDate || pane.tasks[0].Text != "low soon" {
		t.Fatalf("default order starts with %q", pane.tasks[0].Text)
	}

	pane.Update(press("s"))
	if pane.SortMode() != streak.SortByPriority {
		t.Errorf("sort mode = %v, want priority", pane.SortMode())
	}
	if pane.tasks[0].Text != "high later" {
		t.Errorf("priority order starts with %q", pane.tasks[0].Text)
	}
	if !strings.Contains(pane.View(), "by priority") {
		t.Error("view should name the sort order")
	}
}

func TestTaskPane_View(t *testing.T) {
	pane, store := newTestTaskPane(t)

	if !strings.Contains(pane.View(), "No tasks yet") {
		t.Error("empty pane should show the placeholder")
	}

	ctx := context.Background()
	if _, err := store.AddTask(ctx, storage.NewTask{Text: "Water plants", Priority: model.PriorityHigh, IsRepeating: true}); err != nil {
		t.Fatal(err)
	}
	drain(t, pane, pane.LoadTasksCmd())

	view := pane.View()
	for _, want := range []string{"TASKS", "Water plants", "!", "↻", "[ ]", "1 active · 0 done"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTaskPane_FormatDueDate(t *testing.T) {
	pane, store := newTestTaskPane(t)
	now := store.Now()

	tests := []struct {
		due  string
		want string
	}{
		{"", ""},
		{"not-a-date", ""},
		{"2025-03-09", "!"},
		{"2025-03-10", "T"},
		{"2025-03-11", "+1"},
		{"2025-03-14", "4d"},
		{"2025-03-24", "2w"},
		{"2025-05-01", ">1m"},
	}
	for _, tc := range tests {
		if got := pane.formatDueDate(tc.due, now); got != tc.want {
			t.Errorf("formatDueDate(%q) = %q, want %q", tc.due, got, tc.want)
		}
	}
}

func TestTaskPane_IgnoresKeysWhenUnfocused(t *testing.T) {
	pane, _ := newTestTaskPane(t)
	pane.SetFocused(false)

	pane.Update(press("a"))
	if pane.IsAdding() {
		t.Error("unfocused pane should not open the form")
	}
}
