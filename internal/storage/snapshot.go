package storage

import (
	"context"

	"productivelife/internal/model"
)

// Snapshot is a deep copy of every collection.
type Snapshot struct {
	Tasks          []model.Task
	Habits         []model.Habit
	Goals          []model.Goal
	JournalEntries []model.JournalEntry
	Affirmations   []model.Affirmation
}

// Snapshot copies the current collections.
func (s *Store) Snapshot() Snapshot {
	st := s.State()
	return Snapshot{
		Tasks:          st.Tasks,
		Habits:         st.Habits,
		Goals:          st.Goals,
		JournalEntries: s.JournalEntries(),
		Affirmations:   s.Affirmations(),
	}
}

// Patch replaces whole collections. Nil fields leave the collection as is.
type Patch struct {
	Tasks          *[]model.Task
	Habits         *[]model.Habit
	Goals          *[]model.Goal
	JournalEntries *[]model.JournalEntry
	Affirmations   *[]model.Affirmation
}

// Empty reports whether p replaces nothing.
func (p Patch) Empty() bool {
	return p.Tasks == nil && p.Habits == nil && p.Goals == nil &&
		p.JournalEntries == nil && p.Affirmations == nil
}

// Replace swaps in every non-nil collection of p and persists them.
func (s *Store) Replace(ctx context.Context, p Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	if p.Tasks != nil {
		s.tasks = append([]model.Task{}, (*p.Tasks)...)
		names = append(names, RecordTasks)
	}
	if p.Habits != nil {
		s.habits = make([]model.Habit, 0, len(*p.Habits))
		for _, h := range *p.Habits {
			h = h.Clone()
			h.CompletedDates = dedupeDates(h.CompletedDates)
			s.habits = append(s.habits, h)
		}
		clearStaleToday(s.habits, model.Date(s.now()))
		names = append(names, RecordHabits)
	}
	if p.Goals != nil {
		s.goals = make([]model.Goal, 0, len(*p.Goals))
		for _, g := range *p.Goals {
			s.goals = append(s.goals, g.Clone())
		}
		names = append(names, RecordGoals)
	}
	if p.JournalEntries != nil {
		s.journal = append([]model.JournalEntry{}, (*p.JournalEntries)...)
		names = append(names, RecordJournal)
	}
	if p.Affirmations != nil {
		s.affirmations = append([]model.Affirmation{}, (*p.Affirmations)...)
		names = append(names, RecordAffirmations)
	}
	if len(names) == 0 {
		return nil
	}
	s.logger.Info("collections replaced", "records", names)
	return s.persistLocked(ctx, names...)
}
