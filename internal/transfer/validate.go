package transfer

import (
	"strings"

	"productivelife/internal/model"
)

type idSet map[string]struct{}

func (s idSet) claim(key string, i int, id string) error {
	if strings.TrimSpace(id) == "" {
		return malformed("%s[%d]: missing id", key, i)
	}
	if _, dup := s[id]; dup {
		return malformed("%s[%d]: duplicate id %q", key, i, id)
	}
	s[id] = struct{}{}
	return nil
}

func validateTasks(tasks []model.Task) error {
	ids := idSet{}
	for i, t := range tasks {
		if err := ids.claim(KeyTasks, i, t.ID); err != nil {
			return err
		}
		if strings.TrimSpace(t.Text) == "" {
			return malformed("tasks[%d]: missing text", i)
		}
		if !t.Priority.Valid() {
			return malformed("tasks[%d]: unknown priority %q", i, t.Priority)
		}
		if t.DueDate != "" && !model.ValidDate(t.DueDate) {
			return malformed("tasks[%d]: dueDate %q is not YYYY-MM-DD", i, t.DueDate)
		}
	}
	return nil
}

func validateHabits(habits []model.Habit) error {
	ids := idSet{}
	for i := range habits {
		h := &habits[i]
		if err := ids.claim(KeyHabits, i, h.ID); err != nil {
			return err
		}
		if strings.TrimSpace(h.Name) == "" {
			return malformed("habits[%d]: missing name", i)
		}
		if !h.Frequency.Valid() {
			return malformed("habits[%d]: unknown frequency %q", i, h.Frequency)
		}
		if !h.Category.Valid() {
			return malformed("habits[%d]: unknown category %q", i, h.Category)
		}
		if h.Streak < 0 {
			return malformed("habits[%d]: negative streak", i)
		}
		if h.LastCompleted != "" && !model.ValidDate(h.LastCompleted) {
			return malformed("habits[%d]: lastCompleted %q is not YYYY-MM-DD", i, h.LastCompleted)
		}
		if h.CompletedDates == nil {
			h.CompletedDates = []string{}
		}
		seen := make(map[string]struct{}, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			if !model.ValidDate(d) {
				return malformed("habits[%d]: completed date %q is not YYYY-MM-DD", i, d)
			}
			if _, dup := seen[d]; dup {
				return malformed("habits[%d]: completed date %s listed twice", i, d)
			}
			seen[d] = struct{}{}
		}
	}
	return nil
}

func validateGoals(goals []model.Goal) error {
	ids := idSet{}
	for i := range goals {
		g := &goals[i]
		if err := ids.claim(KeyGoals, i, g.ID); err != nil {
			return err
		}
		if strings.TrimSpace(g.Title) == "" {
			return malformed("goals[%d]: missing title", i)
		}
		if !g.Type.Valid() {
			return malformed("goals[%d]: unknown type %q", i, g.Type)
		}
		if g.Priority == "" {
			g.Priority = model.PriorityMedium
		}
		if !g.Priority.Valid() {
			return malformed("goals[%d]: unknown priority %q", i, g.Priority)
		}
		if !g.Completed {
			g.CompletedAt = nil
		}
	}
	return nil
}

func validateJournal(entries []model.JournalEntry) error {
	ids := idSet{}
	for i, e := range entries {
		if err := ids.claim(KeyJournalEntries, i, e.ID); err != nil {
			return err
		}
		if !model.ValidDate(e.Date) {
			return malformed("journalEntries[%d]: date %q is not YYYY-MM-DD", i, e.Date)
		}
		if strings.TrimSpace(e.Content) == "" {
			return malformed("journalEntries[%d]: missing content", i)
		}
	}
	return nil
}

func validateAffirmations(affs []model.Affirmation) error {
	ids := idSet{}
	for i, a := range affs {
		if err := ids.claim(KeyAffirmations, i, a.ID); err != nil {
			return err
		}
		if strings.TrimSpace(a.Text) == "" {
			return malformed("affirmations[%d]: missing text", i)
		}
	}
	return nil
}
