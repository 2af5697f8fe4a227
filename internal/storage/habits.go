package storage

import (
	"context"
	"strings"
	"unicode/utf8"

	"productivelife/internal/model"
	"productivelife/internal/streak"
)

// Habits returns a copy of all habits in insertion order.
func (s *Store) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// AddHabit creates a habit with a zero streak and no completions.
func (s *Store) AddHabit(ctx context.Context, name string, freq model.Frequency, cat model.Category) (model.Habit, error) {
	if freq == "" {
		freq = model.FrequencyDaily
	}
	h := model.Habit{
		ID:             newID(),
		Name:           strings.TrimSpace(name),
		Frequency:      freq,
		CompletedDates: []string{},
		CreatedAt:      s.now().UTC(),
		Category:       cat,
	}
	if err := validateHabit(h); err != nil {
		return model.Habit{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits = append(s.habits, h)
	return h.Clone(), s.persistLocked(ctx, RecordHabits)
}

func validateHabit(h model.Habit) error {
	if h.Name == "" {
		return invalid("habit name is required")
	}
	if utf8.RuneCountInString(h.Name) > maxTextLen {
		return invalid("habit name too long (max %d)", maxTextLen)
	}
	if !h.Frequency.Valid() {
		return invalid("unknown frequency %q", h.Frequency)
	}
	if !h.Category.Valid() {
		return invalid("unknown category %q", h.Category)
	}
	return nil
}

func (s *Store) habitIndex(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// ToggleHabit marks or unmarks the habit for today and updates its streak.
func (s *Store) ToggleHabit(ctx context.Context, id string) (model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return model.Habit{}, notFound("habit", id)
	}
	s.habits[i] = streak.ToggleHabit(s.habits[i], model.Date(s.now()))
	return s.habits[i].Clone(), s.persistLocked(ctx, RecordHabits)
}

// RenameHabit changes a habit's name and, when non-empty, its frequency.
func (s *Store) RenameHabit(ctx context.Context, id, name string, freq model.Frequency) (model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return model.Habit{}, notFound("habit", id)
	}
	h := s.habits[i].Clone()
	h.Name = strings.TrimSpace(name)
	if freq != "" {
		h.Frequency = freq
	}
	if err := validateHabit(h); err != nil {
		return model.Habit{}, err
	}
	s.habits[i] = h
	return h.Clone(), s.persistLocked(ctx, RecordHabits)
}

// DeleteHabit removes a habit and returns it with its former index for undo.
func (s *Store) DeleteHabit(ctx context.Context, id string) (model.Habit, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return model.Habit{}, -1, notFound("habit", id)
	}
	h := s.habits[i]
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	return h, i, s.persistLocked(ctx, RecordHabits)
}

// RestoreHabit reinserts a deleted habit at index.
func (s *Store) RestoreHabit(ctx context.Context, h model.Habit, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.habitIndex(h.ID) >= 0 {
		return invalid("habit %s already exists", h.ID)
	}
	s.habits = insertAt(s.habits, index, h.Clone())
	return s.persistLocked(ctx, RecordHabits)
}

// PutHabit overwrites the habit with the same id, streak and dates included.
// Undo uses it to put back the exact state from before a toggle.
func (s *Store) PutHabit(ctx context.Context, h model.Habit) error {
	if err := validateHabit(h); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(h.ID)
	if i < 0 {
		return notFound("habit", h.ID)
	}
	s.habits[i] = h.Clone()
	return s.persistLocked(ctx, RecordHabits)
}
