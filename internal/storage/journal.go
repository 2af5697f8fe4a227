package storage

import (
	"context"
	"strings"
	"unicode/utf8"

	"productivelife/internal/model"
)

// JournalEntries returns a copy of all entries, oldest first.
func (s *Store) JournalEntries() []model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.JournalEntry{}, s.journal...)
}

// AddJournalEntry records content for today.
func (s *Store) AddJournalEntry(ctx context.Context, content, mood string) (model.JournalEntry, error) {
	now := s.now()
	e := model.JournalEntry{
		ID:        newID(),
		Date:      model.Date(now),
		Content:   strings.TrimSpace(content),
		Mood:      strings.TrimSpace(mood),
		CreatedAt: now.UTC(),
	}
	if e.Content == "" {
		return model.JournalEntry{}, invalid("journal content is required")
	}
	if utf8.RuneCountInString(e.Content) > maxJournalLen {
		return model.JournalEntry{}, invalid("journal content too long (max %d)", maxJournalLen)
	}
	if utf8.RuneCountInString(e.Mood) > maxMoodLen {
		return model.JournalEntry{}, invalid("mood too long (max %d)", maxMoodLen)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal = append(s.journal, e)
	return e, s.persistLocked(ctx, RecordJournal)
}

// DeleteJournalEntry removes an entry by id.
func (s *Store) DeleteJournalEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.journal {
		if s.journal[i].ID == id {
			s.journal = append(s.journal[:i], s.journal[i+1:]...)
			return s.persistLocked(ctx, RecordJournal)
		}
	}
	return notFound("journal entry", id)
}

// Affirmations returns a copy of all affirmations.
func (s *Store) Affirmations() []model.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Affirmation{}, s.affirmations...)
}

// AddAffirmation stores a new affirmation.
func (s *Store) AddAffirmation(ctx context.Context, text string) (model.Affirmation, error) {
	a := model.Affirmation{
		ID:        newID(),
		Text:      strings.TrimSpace(text),
		CreatedAt: s.now().UTC(),
	}
	if a.Text == "" {
		return model.Affirmation{}, invalid("affirmation text is required")
	}
	if utf8.RuneCountInString(a.Text) > maxTextLen {
		return model.Affirmation{}, invalid("affirmation too long (max %d)", maxTextLen)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.affirmations = append(s.affirmations, a)
	return a, s.persistLocked(ctx, RecordAffirmations)
}

// DeleteAffirmation removes an affirmation by id.
func (s *Store) DeleteAffirmation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.affirmations {
		if s.affirmations[i].ID == id {
			s.affirmations = append(s.affirmations[:i], s.affirmations[i+1:]...)
			return s.persistLocked(ctx, RecordAffirmations)
		}
	}
	return notFound("affirmation", id)
}
