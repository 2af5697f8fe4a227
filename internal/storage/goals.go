package storage

import (
	"context"
	"strings"
	"unicode/utf8"

	"productivelife/internal/model"
)

// NewGoal describes a goal to add. Zero Type means daily; zero Priority means Medium.
type NewGoal struct {
	Title       string
	Description string
	Type        model.GoalType
	Priority    model.Priority
}

// Goals returns a copy of all goals in insertion order.
func (s *Store) Goals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Goal, len(s.goals))
	for i, g := range s.goals {
		out[i] = g.Clone()
	}
	return out
}

// AddGoal validates and appends an open goal.
func (s *Store) AddGoal(ctx context.Context, in NewGoal) (model.Goal, error) {
	if in.Type == "" {
		in.Type = model.GoalDaily
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	g := model.Goal{
		ID:          newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		Priority:    in.Priority,
	}
	if err := validateGoal(g); err != nil {
		return model.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	return g, s.persistLocked(ctx, RecordGoals)
}

func validateGoal(g model.Goal) error {
	if g.Title == "" {
		return invalid("goal title is required")
	}
	if utf8.RuneCountInString(g.Title) > maxTextLen {
		return invalid("goal title too long (max %d)", maxTextLen)
	}
	if utf8.RuneCountInString(g.Description) > maxJournalLen {
		return invalid("goal description too long (max %d)", maxJournalLen)
	}
	if !g.Type.Valid() {
		return invalid("unknown goal type %q", g.Type)
	}
	if !g.Priority.Valid() {
		return invalid("unknown priority %q", g.Priority)
	}
	return nil
}

func (s *Store) goalIndex(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// ToggleGoal flips completion, stamping or clearing CompletedAt.
func (s *Store) ToggleGoal(ctx context.Context, id string) (model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.goalIndex(id)
	if i < 0 {
		return model.Goal{}, notFound("goal", id)
	}
	g := s.goals[i].Clone()
	g.Completed = !g.Completed
	if g.Completed {
		at := s.now().UTC()
		g.CompletedAt = &at
	} else {
		g.CompletedAt = nil
	}
	s.goals[i] = g
	return g.Clone(), s.persistLocked(ctx, RecordGoals)
}

// DeleteGoal removes a goal and returns it with its former index for undo.
func (s *Store) DeleteGoal(ctx context.Context, id string) (model.Goal, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.goalIndex(id)
	if i < 0 {
		return model.Goal{}, -1, notFound("goal", id)
	}
	g := s.goals[i]
	s.goals = append(s.goals[:i], s.goals[i+1:]...)
	return g, i, s.persistLocked(ctx, RecordGoals)
}

// RestoreGoal reinserts a deleted goal at index.
func (s *Store) RestoreGoal(ctx context.Context, g model.Goal, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.goalIndex(g.ID) >= 0 {
		return invalid("goal %s already exists", g.ID)
	}
	s.goals = insertAt(s.goals, index, g.Clone())
	return s.persistLocked(ctx, RecordGoals)
}
