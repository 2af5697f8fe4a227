package storage

import (
	"context"
	"strings"
	"unicode/utf8"

	"productivelife/internal/model"
	"productivelife/internal/streak"
)

// NewTask describes a task to add. A zero Priority means Medium.
type NewTask struct {
	Text        string
	Priority    model.Priority
	DueDate     string
	IsRepeating bool
}

// Tasks returns a copy of all tasks in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task{}, s.tasks...)
}

// SortedTasks returns the tasks ordered by mode.
func (s *Store) SortedTasks(mode streak.SortMode) []model.Task {
	return streak.SortTasks(s.Tasks(), mode)
}

// AddTask validates and appends a new incomplete task.
func (s *Store) AddTask(ctx context.Context, in NewTask) (model.Task, error) {
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	t := model.Task{
		ID:          newID(),
		Text:        strings.TrimSpace(in.Text),
		Priority:    in.Priority,
		DueDate:     strings.TrimSpace(in.DueDate),
		IsRepeating: in.IsRepeating,
	}
	if err := validateTask(t); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
	return t, s.persistLocked(ctx, RecordTasks)
}

func validateTask(t model.Task) error {
	if t.Text == "" {
		return invalid("task text is required")
	}
	if utf8.RuneCountInString(t.Text) > maxTextLen {
		return invalid("task text too long (max %d)", maxTextLen)
	}
	if !t.Priority.Valid() {
		return invalid("unknown priority %q", t.Priority)
	}
	if t.DueDate != "" && !model.ValidDate(t.DueDate) {
		return invalid("due date %q is not YYYY-MM-DD", t.DueDate)
	}
	return nil
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateTask applies edit to a copy of the task, validates the result and
// stores it. The id cannot be changed.
func (s *Store) UpdateTask(ctx context.Context, id string, edit func(*model.Task)) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	t := s.tasks[i]
	edit(&t)
	t.ID = id
	t.Text = strings.TrimSpace(t.Text)
	if err := validateTask(t); err != nil {
		return model.Task{}, err
	}
	s.tasks[i] = t
	return t, s.persistLocked(ctx, RecordTasks)
}

// ToggleTask flips a task's completed flag.
func (s *Store) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	return s.UpdateTask(ctx, id, func(t *model.Task) {
		t.Completed = !t.Completed
		t.CompletedToday = t.Completed
	})
}

// DeleteTask removes a task and returns it with its former index for undo.
func (s *Store) DeleteTask(ctx context.Context, id string) (model.Task, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, -1, notFound("task", id)
	}
	t := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return t, i, s.persistLocked(ctx, RecordTasks)
}

// RestoreTask reinserts a deleted task at index.
func (s *Store) RestoreTask(ctx context.Context, t model.Task, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taskIndex(t.ID) >= 0 {
		return invalid("task %s already exists", t.ID)
	}
	s.tasks = insertAt(s.tasks, index, t)
	return s.persistLocked(ctx, RecordTasks)
}
