package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"productivelife/internal/logging"
	"productivelife/internal/model"
	"productivelife/internal/streak"
)

// quiet keeps recovery and rollover logs out of test output.
var quiet = logging.Discard()

// fixedClock returns a clock that reads *now, so tests can move time.
func fixedClock(now *time.Time) func() time.Time {
	return func() time.Time { return *now }
}

// createTestStore opens a file-backed Store in a temp dir with a fixed clock.
func createTestStore(t *testing.T, now *time.Time) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return openTestStore(t, dir, now), dir
}

func openTestStore(t *testing.T, dir string, now *time.Time) *Store {
	t.Helper()
	backend, err := NewFileBackend(dir, quiet)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	store, err := Open(context.Background(), backend, Options{Logger: quiet, Now: fixedClock(now)})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.Local)
}

// =============================================================================
// Task Tests
// =============================================================================

func TestAddTask(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	task, err := store.AddTask(ctx, NewTask{Text: "  Buy milk  "})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if task.Text != "Buy milk" {
		t.Errorf("Text = %q, want trimmed", task.Text)
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want Medium default", task.Priority)
	}
	if task.Completed || task.IsRepeating {
		t.Error("new task should be incomplete and not repeating")
	}
	if task.ID == "" {
		t.Error("ID should be set")
	}

	got := store.Tasks()
	if len(got) != 1 || got[0].ID != task.ID {
		t.Fatalf("Tasks() = %+v, want the added task", got)
	}
}

func TestAddTask_Validation(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewTask
	}{
		{"empty", NewTask{Text: "   "}},
		{"too long", NewTask{Text: strings.Repeat("a", maxTextLen+1)}},
		{"bad priority", NewTask{Text: "x", Priority: "Urgent"}},
		{"bad due date", NewTask{Text: "x", DueDate: "03/10/2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.AddTask(ctx, tt.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("AddTask() error = %v, want ErrInvalidInput", err)
			}
		})
	}
	if n := len(store.Tasks()); n != 0 {
		t.Errorf("len(tasks) = %d after rejected adds, want 0", n)
	}
}

func TestToggleTask(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	task, _ := store.AddTask(ctx, NewTask{Text: "Stretch"})
	got, err := store.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if !got.Completed {
		t.Error("task should be completed")
	}
	got, _ = store.ToggleTask(ctx, task.ID)
	if got.Completed {
		t.Error("second toggle should reopen the task")
	}

	if _, err := store.ToggleTask(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleTask(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateTask(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	task, _ := store.AddTask(ctx, NewTask{Text: "Draft"})
	got, err := store.UpdateTask(ctx, task.ID, func(t *model.Task) {
		t.Text = "Final"
		t.Priority = model.PriorityHigh
		t.DueDate = "2025-03-12"
		t.IsRepeating = true
		t.ID = "hijack"
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("ID changed to %q", got.ID)
	}
	if got.Text != "Final" || got.Priority != model.PriorityHigh || got.DueDate != "2025-03-12" || !got.IsRepeating {
		t.Errorf("UpdateTask() = %+v", got)
	}

	_, err = store.UpdateTask(ctx, task.ID, func(t *model.Task) { t.Text = "" })
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty text error = %v, want ErrInvalidInput", err)
	}
	if store.Tasks()[0].Text != "Final" {
		t.Error("rejected edit must not change the task")
	}
}

func TestDeleteAndRestoreTask(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	a, _ := store.AddTask(ctx, NewTask{Text: "a"})
	b, _ := store.AddTask(ctx, NewTask{Text: "b"})
	c, _ := store.AddTask(ctx, NewTask{Text: "c"})

	deleted, idx, err := store.DeleteTask(ctx, b.ID)
	if err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if idx != 1 || deleted.ID != b.ID {
		t.Fatalf("DeleteTask() = %v,%d", deleted.ID, idx)
	}
	if err := store.RestoreTask(ctx, deleted, idx); err != nil {
		t.Fatalf("RestoreTask() error = %v", err)
	}

	got := store.Tasks()
	want := []string{a.ID, b.ID, c.ID}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order after restore = %v", got)
		}
	}
	if err := store.RestoreTask(ctx, deleted, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate restore error = %v, want ErrInvalidInput", err)
	}
	if _, _, err := store.DeleteTask(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTask(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSortedTasks(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	store.AddTask(ctx, NewTask{Text: "late", DueDate: "2025-04-01", Priority: model.PriorityHigh})
	store.AddTask(ctx, NewTask{Text: "none", Priority: model.PriorityLow})
	store.AddTask(ctx, NewTask{Text: "soon", DueDate: "2025-03-11", Priority: model.PriorityLow})

	byDue := store.SortedTasks(streak.SortByDueDate)
	if byDue[0].Text != "soon" || byDue[2].Text != "none" {
		t.Errorf("by due date = %v", byDue)
	}
	byPrio := store.SortedTasks(streak.SortByPriority)
	if byPrio[0].Text != "late" {
		t.Errorf("by priority = %v", byPrio)
	}
}

// =============================================================================
// Habit Tests
// =============================================================================

func TestAddHabit(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)

	h, err := store.AddHabit(context.Background(), "Meditate", "", model.CategoryMindfulness)
	if err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	if h.Frequency != model.FrequencyDaily {
		t.Errorf("Frequency = %q, want daily default", h.Frequency)
	}
	if h.Streak != 0 || h.CompletedToday || len(h.CompletedDates) != 0 {
		t.Errorf("new habit = %+v, want fresh state", h)
	}
	if h.CompletedDates == nil {
		t.Error("CompletedDates should be an empty list, not nil")
	}
	if !h.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", h.CreatedAt, now)
	}

	if _, err := store.AddHabit(context.Background(), "x", "hourly", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad frequency error = %v", err)
	}
	if _, err := store.AddHabit(context.Background(), "x", "", "sports"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad category error = %v", err)
	}
}

func TestToggleHabit_StreakAcrossDays(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, dir := createTestStore(t, &now)
	ctx := context.Background()

	h, _ := store.AddHabit(ctx, "Run", model.FrequencyDaily, "")
	h, err := store.ToggleHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("ToggleHabit() error = %v", err)
	}
	if h.Streak != 1 || !h.CompletedToday {
		t.Fatalf("day 1 = %+v", h)
	}
	if err := store.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Next day: reopening runs the rollover, then the toggle continues the streak.
	now = day(2025, 3, 11, 8)
	store = openTestStore(t, dir, &now)
	h = store.Habits()[0]
	if h.CompletedToday {
		t.Fatal("rollover should clear completedToday")
	}
	if h.Streak != 1 {
		t.Fatalf("rollover must not touch the streak, got %d", h.Streak)
	}
	h, _ = store.ToggleHabit(ctx, h.ID)
	if h.Streak != 2 {
		t.Errorf("day 2 streak = %d, want 2", h.Streak)
	}
	if h.LastCompleted != "2025-03-11" {
		t.Errorf("LastCompleted = %q", h.LastCompleted)
	}

	h, _ = store.ToggleHabit(ctx, h.ID)
	if h.Streak != 1 || h.CompletedToday || h.HasDate("2025-03-11") {
		t.Errorf("undo = %+v", h)
	}
}

func TestRenameDeleteRestoreHabit(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	h, _ := store.AddHabit(ctx, "Read", "", "")
	h, err := store.RenameHabit(ctx, h.ID, "Read 20 pages", model.FrequencyWeekly)
	if err != nil {
		t.Fatalf("RenameHabit() error = %v", err)
	}
	if h.Name != "Read 20 pages" || h.Frequency != model.FrequencyWeekly {
		t.Errorf("RenameHabit() = %+v", h)
	}

	deleted, idx, err := store.DeleteHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("DeleteHabit() error = %v", err)
	}
	if len(store.Habits()) != 0 {
		t.Fatal("habit not deleted")
	}
	if err := store.RestoreHabit(ctx, deleted, idx); err != nil {
		t.Fatalf("RestoreHabit() error = %v", err)
	}
	if got := store.Habits(); len(got) != 1 || got[0].Name != "Read 20 pages" {
		t.Errorf("after restore = %+v", got)
	}
	if _, _, err := store.DeleteHabit(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteHabit(missing) error = %v", err)
	}
}

func TestPutHabit_RestoresExactState(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	h, _ := store.AddHabit(ctx, "Read", model.FrequencyDaily, "")
	before, _ := store.ToggleHabit(ctx, h.ID)
	after, _ := store.ToggleHabit(ctx, h.ID)
	if after.CompletedToday {
		t.Fatal("second toggle should undo today")
	}

	if err := store.PutHabit(ctx, before); err != nil {
		t.Fatalf("PutHabit() error = %v", err)
	}
	got := store.Habits()[0]
	if got.Streak != before.Streak || !got.CompletedToday || !got.HasDate("2025-03-10") {
		t.Errorf("PutHabit() left %+v, want %+v", got, before)
	}

	missing := before
	missing.ID = "nope"
	if err := store.PutHabit(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("PutHabit(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestHabits_ReturnsCopies(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	h, _ := store.AddHabit(ctx, "Walk", "", "")
	store.ToggleHabit(ctx, h.ID)

	got := store.Habits()
	got[0].CompletedDates[0] = "tampered"
	got[0].Streak = 99

	again := store.Habits()[0]
	if again.CompletedDates[0] != "2025-03-10" || again.Streak != 1 {
		t.Errorf("store state leaked through Habits(): %+v", again)
	}
}

// =============================================================================
// Goal, Journal and Affirmation Tests
// =============================================================================

func TestGoals(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	g, err := store.AddGoal(ctx, NewGoal{Title: "Ship v1", Type: model.GoalWeekly})
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}
	if g.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want Medium default", g.Priority)
	}

	g, _ = store.ToggleGoal(ctx, g.ID)
	if !g.Completed || g.CompletedAt == nil || !g.CompletedAt.Equal(now) {
		t.Errorf("ToggleGoal on = %+v", g)
	}
	g, _ = store.ToggleGoal(ctx, g.ID)
	if g.Completed || g.CompletedAt != nil {
		t.Errorf("ToggleGoal off = %+v", g)
	}

	if _, err := store.AddGoal(ctx, NewGoal{Title: "x", Type: "monthly"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad goal type error = %v", err)
	}

	deleted, idx, _ := store.DeleteGoal(ctx, g.ID)
	if len(store.Goals()) != 0 {
		t.Fatal("goal not deleted")
	}
	if err := store.RestoreGoal(ctx, deleted, idx); err != nil {
		t.Fatalf("RestoreGoal() error = %v", err)
	}
}

func TestJournalAndAffirmations(t *testing.T) {
	now := day(2025, 3, 10, 21)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	e, err := store.AddJournalEntry(ctx, "Good day", "calm")
	if err != nil {
		t.Fatalf("AddJournalEntry() error = %v", err)
	}
	if e.Date != "2025-03-10" || e.Mood != "calm" {
		t.Errorf("entry = %+v", e)
	}
	if _, err := store.AddJournalEntry(ctx, " ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty entry error = %v", err)
	}
	if err := store.DeleteJournalEntry(ctx, e.ID); err != nil {
		t.Fatalf("DeleteJournalEntry() error = %v", err)
	}
	if err := store.DeleteJournalEntry(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}

	a, err := store.AddAffirmation(ctx, "I finish what I start")
	if err != nil {
		t.Fatalf("AddAffirmation() error = %v", err)
	}
	if got := store.Affirmations(); len(got) != 1 || got[0].Text != a.Text {
		t.Errorf("Affirmations() = %+v", got)
	}
	if err := store.DeleteAffirmation(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAffirmation() error = %v", err)
	}
}

// =============================================================================
// Session, Rollover and Persistence Tests
// =============================================================================

func TestOpen_RolloverOncePerDay(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, dir := createTestStore(t, &now)
	ctx := context.Background()

	rep, _ := store.AddTask(ctx, NewTask{Text: "Water plants", IsRepeating: true})
	one, _ := store.AddTask(ctx, NewTask{Text: "File taxes"})
	daily, _ := store.AddGoal(ctx, NewGoal{Title: "Inbox zero", Type: model.GoalDaily})
	weekly, _ := store.AddGoal(ctx, NewGoal{Title: "Gym x3", Type: model.GoalWeekly})
	store.ToggleTask(ctx, rep.ID)
	store.ToggleTask(ctx, one.ID)
	store.ToggleGoal(ctx, daily.ID)
	store.ToggleGoal(ctx, weekly.ID)
	store.Close(ctx)

	// Same day: no rollover.
	store = openTestStore(t, dir, &now)
	if store.LastRollover().Applied {
		t.Fatal("rollover ran twice on the same day")
	}
	if !store.Tasks()[0].Completed {
		t.Fatal("same-day reopen cleared a task")
	}
	store.Close(ctx)

	now = day(2025, 3, 11, 7)
	store = openTestStore(t, dir, &now)
	res := store.LastRollover()
	if !res.Applied || res.TasksCleared != 2 || res.GoalsCleared != 1 {
		t.Fatalf("rollover = %+v", res)
	}
	if store.LastReset() != "2025-03-11" {
		t.Errorf("LastReset() = %q", store.LastReset())
	}
	tasks := store.Tasks()
	if tasks[0].Completed {
		t.Error("repeating task should reset")
	}
	if !tasks[1].Completed {
		t.Error("one-off task should stay completed")
	}
	goals := store.Goals()
	if goals[0].Completed {
		t.Error("daily goal should reset")
	}
	if !goals[1].Completed {
		t.Error("weekly goal should survive")
	}

	// A second rollover within the session is a no-op.
	again, err := store.Rollover(ctx)
	if err != nil {
		t.Fatalf("Rollover() error = %v", err)
	}
	if again.Applied {
		t.Error("Rollover() applied twice")
	}
}

func TestStore_RecordsMatchFieldNames(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, dir := createTestStore(t, &now)
	ctx := context.Background()

	h, _ := store.AddHabit(ctx, "Journal", "", "")
	store.ToggleHabit(ctx, h.ID)
	store.AddTask(ctx, NewTask{Text: "t", DueDate: "2025-03-12", IsRepeating: true})

	habits, err := os.ReadFile(filepath.Join(dir, "habits.json"))
	if err != nil {
		t.Fatalf("read habits.json: %v", err)
	}
	for _, field := range []string{`"completedToday": true`, `"completedDates"`, `"lastCompleted": "2025-03-10"`, `"createdAt"`, `"streak": 1`} {
		if !strings.Contains(string(habits), field) {
			t.Errorf("habits.json missing %s:\n%s", field, habits)
		}
	}
	tasks, _ := os.ReadFile(filepath.Join(dir, "tasks.json"))
	for _, field := range []string{`"isRepeating": true`, `"dueDate": "2025-03-12"`, `"priority": "Medium"`} {
		if !strings.Contains(string(tasks), field) {
			t.Errorf("tasks.json missing %s:\n%s", field, tasks)
		}
	}
}

func TestStore_ManualFlush(t *testing.T) {
	now := day(2025, 3, 10, 9)
	dir := t.TempDir()
	ctx := context.Background()
	backend, _ := NewFileBackend(dir, quiet)
	store, err := Open(ctx, backend, Options{Logger: quiet, Now: fixedClock(&now), ManualFlush: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	store.AddTask(ctx, NewTask{Text: "pending"})
	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); !os.IsNotExist(err) {
		t.Fatal("tasks.json written before Flush")
	}
	if !store.Dirty() {
		t.Fatal("Dirty() = false with pending writes")
	}
	if err := store.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := store.Close(ctx); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	reopened := openTestStore(t, dir, &now)
	if got := reopened.Tasks(); len(got) != 1 || got[0].Text != "pending" {
		t.Errorf("after reopen = %+v", got)
	}
}

func TestDarkMode(t *testing.T) {
	now := day(2025, 3, 10, 9)
	dir := t.TempDir()
	ctx := context.Background()
	backend, _ := NewFileBackend(dir, quiet)
	store, err := Open(ctx, backend, Options{Logger: quiet, Now: fixedClock(&now), DefaultDarkMode: func() bool { return true }})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !store.DarkMode() {
		t.Error("DarkMode() should fall back to the default")
	}
	on, err := store.ToggleDarkMode(ctx)
	if err != nil || on {
		t.Fatalf("ToggleDarkMode() = %v, %v", on, err)
	}
	store.Close(ctx)

	reopened := openTestStore(t, dir, &now)
	if reopened.DarkMode() {
		t.Error("stored dark mode flag not persisted")
	}
}

func TestOpen_CorruptFileRecoversFromBackup(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, dir := createTestStore(t, &now)
	ctx := context.Background()

	store.AddTask(ctx, NewTask{Text: "first"})
	store.AddTask(ctx, NewTask{Text: "second"})
	store.Close(ctx)

	// The .bak holds the one-task version; break the live file.
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	reopened := openTestStore(t, dir, &now)
	got := reopened.Tasks()
	if len(got) != 1 || got[0].Text != "first" {
		t.Errorf("recovered tasks = %+v", got)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "tasks.json.corrupt.*"))
	if len(matches) != 1 {
		t.Errorf("corrupt file not preserved: %v", matches)
	}
}

func TestOpen_CorruptFileWithoutBackupStartsEmpty(t *testing.T) {
	now := day(2025, 3, 10, 9)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "habits.json"), []byte("   "), 0600); err != nil {
		t.Fatal(err)
	}

	store := openTestStore(t, dir, &now)
	if n := len(store.Habits()); n != 0 {
		t.Errorf("len(habits) = %d, want 0", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "habits.json")); !os.IsNotExist(err) {
		t.Error("empty habits.json should have been moved aside")
	}
}

func TestOpen_DedupesCompletedDates(t *testing.T) {
	now := day(2025, 3, 10, 9)
	dir := t.TempDir()
	raw := `[{"id":"h1","name":"Run","frequency":"daily","streak":2,"completedToday":false,
	"completedDates":["2025-03-08","2025-03-09","2025-03-09"],"createdAt":"2025-03-01T00:00:00Z"}]`
	if err := os.WriteFile(filepath.Join(dir, "habits.json"), []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	store := openTestStore(t, dir, &now)
	h := store.Habits()[0]
	if len(h.CompletedDates) != 2 {
		t.Errorf("CompletedDates = %v, want duplicates removed", h.CompletedDates)
	}
}

func TestOpen_RolloverPersistsClearedTaskFlags(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, dir := createTestStore(t, &now)
	ctx := context.Background()

	task, _ := store.AddTask(ctx, NewTask{Text: "Call the bank"})
	if _, err := store.ToggleTask(ctx, task.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	store.Close(ctx)

	now = day(2025, 3, 11, 8)
	store = openTestStore(t, dir, &now)
	if store.Tasks()[0].CompletedToday {
		t.Fatal("rollover should clear CompletedToday")
	}
	store.Close(ctx)

	// Same day again: the marker matches, so only what was written survives.
	store = openTestStore(t, dir, &now)
	got := store.Tasks()[0]
	if got.CompletedToday {
		t.Error("CompletedToday came back after a same-day reopen")
	}
	if !got.Completed {
		t.Error("one-off task should stay completed")
	}
}

func TestOpen_ClearsStaleDoneToday(t *testing.T) {
	now := day(2025, 3, 10, 9)
	dir := t.TempDir()
	habits := `[{"id":"h1","name":"Run","frequency":"daily","streak":5,"completedToday":true,
	"completedDates":["2025-03-05","2025-03-06"],"createdAt":"2025-03-01T00:00:00Z"}]`
	if err := os.WriteFile(filepath.Join(dir, "habits.json"), []byte(habits), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"lastReset":"2025-03-10"}`), 0600); err != nil {
		t.Fatal(err)
	}

	store := openTestStore(t, dir, &now)
	if store.LastRollover().Applied {
		t.Fatal("rollover should not run when the marker is today")
	}
	if store.Habits()[0].CompletedToday {
		t.Error("CompletedToday without today's date should be cleared on load")
	}
	if err := store.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "habits.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"completedToday": true`) {
		t.Errorf("cleared flag was not written back:\n%s", data)
	}
}

func TestReplace_ClearsStaleDoneToday(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	habits := []model.Habit{
		{ID: "h1", Name: "Stale", Frequency: model.FrequencyDaily, Streak: 5, CompletedToday: true,
			CompletedDates: []string{"2025-03-05", "2025-03-06"}},
		{ID: "h2", Name: "Fresh", Frequency: model.FrequencyDaily, Streak: 2, CompletedToday: true,
			CompletedDates: []string{"2025-03-09", "2025-03-10"}},
	}
	if err := store.Replace(ctx, Patch{Habits: &habits}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got := store.Habits()
	if got[0].CompletedToday {
		t.Error("imported flag without today's date should be cleared")
	}
	if !got[1].CompletedToday {
		t.Error("flag backed by today's date should be kept")
	}

	// Toggling must count as a completion, not undo one that never happened.
	h, err := store.ToggleHabit(ctx, "h1")
	if err != nil {
		t.Fatalf("ToggleHabit() error = %v", err)
	}
	if !h.CompletedToday || h.Streak != 1 || !h.HasDate("2025-03-10") {
		t.Errorf("after toggle = %+v, want done today with streak 1", h)
	}
	if !habits[0].CompletedToday {
		t.Error("Replace should not modify the caller's slice")
	}
}

func TestOpen_WrongShapeFails(t *testing.T) {
	now := day(2025, 3, 10, 9)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte(`{"tasks":[]}`), 0600); err != nil {
		t.Fatal(err)
	}
	backend, _ := NewFileBackend(dir, quiet)
	if _, err := Open(context.Background(), backend, Options{Logger: quiet, Now: fixedClock(&now)}); err == nil {
		t.Error("Open() should reject a tasks record that is not a list")
	}
}

func TestReplace(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	store.AddTask(ctx, NewTask{Text: "keep me out"})
	store.AddHabit(ctx, "keep me", "", "")

	tasks := []model.Task{{ID: "t1", Text: "imported", Priority: model.PriorityLow}}
	if err := store.Replace(ctx, Patch{Tasks: &tasks}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if got := store.Tasks(); len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("tasks = %+v", got)
	}
	if got := store.Habits(); len(got) != 1 || got[0].Name != "keep me" {
		t.Errorf("habits should be untouched, got %+v", got)
	}
	if !(Patch{}).Empty() {
		t.Error("zero Patch should be empty")
	}
}

func TestStats(t *testing.T) {
	now := day(2025, 3, 10, 9)
	store, _ := createTestStore(t, &now)
	ctx := context.Background()

	task, _ := store.AddTask(ctx, NewTask{Text: "a"})
	store.AddTask(ctx, NewTask{Text: "b"})
	store.ToggleTask(ctx, task.ID)
	h, _ := store.AddHabit(ctx, "h", "", "")
	store.AddHabit(ctx, "i", "", "")
	store.ToggleHabit(ctx, h.ID)

	st := store.Stats()
	if st.TasksActive != 1 || st.CompletedToday != 1 || st.HabitsDone != 1 || st.HabitsTotal != 2 || st.BestStreak != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestStore_PermissionsArePrivate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions are not meaningful on Windows")
	}

	now := day(2025, 3, 10, 9)
	store, dir := createTestStore(t, &now)
	store.AddTask(context.Background(), NewTask{Text: "x"})

	for _, name := range []string{"tasks.json", "settings.json"} {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("Stat(%s) error = %v", p, err)
		}
		if info.Mode().Perm()&0o077 != 0 {
			t.Fatalf("%s permissions = %o, want no group/other bits", p, info.Mode().Perm())
		}
	}
}
