// Package storage persists the tracker state and exposes it through a Store
// session: Open loads every record and applies the daily rollover, mutations
// go through Store methods, and Close flushes whatever is still pending.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"productivelife/internal/model"
	"productivelife/internal/streak"
)

var (
	// ErrNotFound is returned when an id does not match any entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for rejected field values.
	ErrInvalidInput = errors.New("invalid input")
)

const (
	maxTextLen    = 200
	maxJournalLen = 5000
	maxMoodLen    = 40
)

// Options tunes a Store. The zero value writes through on every mutation and
// uses the wall clock.
type Options struct {
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
	// Logger receives recovery and rollover events. Nil means slog.Default().
	Logger *slog.Logger
	// ManualFlush defers writes until Flush or Close.
	ManualFlush bool
	// DefaultDarkMode decides the dark-mode flag when none is stored.
	DefaultDarkMode func() bool
}

// Store is the single owner of all tracker state for one session.
type Store struct {
	mu      sync.Mutex
	backend Backend
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	tasks        []model.Task
	habits       []model.Habit
	goals        []model.Goal
	journal      []model.JournalEntry
	affirmations []model.Affirmation
	settings     model.Settings

	dirty    map[string]bool
	rollover streak.RolloverResult
	closed   bool
}

// Open loads every record from backend, runs the daily rollover and persists
// its result when it applied. The rollover always completes before Open
// returns, so no caller observes pre-rollover state.
func Open(ctx context.Context, backend Backend, opts Options) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("storage backend is required")
	}
	s := &Store{
		backend: backend,
		opts:    opts,
		logger:  opts.Logger,
		now:     opts.Now,
		dirty:   make(map[string]bool),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	if _, err := s.Rollover(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	targets := map[string]any{
		RecordTasks:        &s.tasks,
		RecordHabits:       &s.habits,
		RecordGoals:        &s.goals,
		RecordJournal:      &s.journal,
		RecordAffirmations: &s.affirmations,
		RecordSettings:     &s.settings,
	}
	for _, name := range Records {
		data, ok, err := s.backend.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, targets[name]); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
	}

	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	if s.habits == nil {
		s.habits = []model.Habit{}
	}
	if s.goals == nil {
		s.goals = []model.Goal{}
	}
	if s.journal == nil {
		s.journal = []model.JournalEntry{}
	}
	if s.affirmations == nil {
		s.affirmations = []model.Affirmation{}
	}
	for i := range s.habits {
		s.habits[i].CompletedDates = dedupeDates(s.habits[i].CompletedDates)
	}
	if n := clearStaleToday(s.habits, model.Date(s.now())); n > 0 {
		s.logger.Warn("cleared done-today flag on habits without today's date", "habits", n)
		s.dirty[RecordHabits] = true
	}
	return nil
}

// clearStaleToday drops the done-today flag from habits whose completion
// dates do not contain today. It returns how many it changed.
func clearStaleToday(habits []model.Habit, today string) int {
	n := 0
	for i := range habits {
		if habits[i].CompletedToday && !habits[i].HasDate(today) {
			habits[i].CompletedToday = false
			n++
		}
	}
	return n
}

func dedupeDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Today returns the current calendar date (YYYY-MM-DD) in local time.
func (s *Store) Today() string {
	return model.Date(s.now())
}

// Rollover applies the daily rollover if the stored marker is not today. Open
// calls it once; long-running callers may call it again after midnight.
func (s *Store) Rollover(ctx context.Context) (streak.RolloverResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := model.Date(s.now())
	res := streak.DailyRollover(s.stateLocked(), today, s.settings.LastReset)
	s.rollover = res
	if !res.Applied {
		return res, nil
	}

	s.tasks = res.State.Tasks
	s.habits = res.State.Habits
	s.goals = res.State.Goals
	s.settings.LastReset = res.LastReset

	s.logger.Info("daily rollover applied",
		"date", today,
		"habits_cleared", res.HabitsCleared,
		"tasks_cleared", res.TasksCleared,
		"goals_cleared", res.GoalsCleared,
	)

	names := []string{RecordSettings}
	if res.Changed() {
		names = append(names, RecordHabits, RecordTasks, RecordGoals)
	}
	return res, s.persistLocked(ctx, names...)
}

// LastRollover returns the result of the most recent Rollover call.
func (s *Store) LastRollover() streak.RolloverResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollover
}

// LastReset returns the stored rollover marker.
func (s *Store) LastReset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.LastReset
}

// State returns a copy of the habit, task and goal collections.
func (s *Store) State() streak.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked().Clone()
}

func (s *Store) stateLocked() streak.State {
	return streak.State{Habits: s.habits, Tasks: s.tasks, Goals: s.goals}
}

// Stats returns the headline counts as of now.
func (s *Store) Stats() streak.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return streak.ComputeStats(s.stateLocked(), s.now())
}

// ============================================================================
// Persistence
// ============================================================================

func (s *Store) recordValue(name string) any {
	switch name {
	case RecordTasks:
		return s.tasks
	case RecordHabits:
		return s.habits
	case RecordGoals:
		return s.goals
	case RecordJournal:
		return s.journal
	case RecordAffirmations:
		return s.affirmations
	case RecordSettings:
		return s.settings
	}
	return nil
}

// persistLocked writes the named records, or marks them dirty under
// ManualFlush. A failed write leaves the record dirty for the next Flush.
func (s *Store) persistLocked(ctx context.Context, names ...string) error {
	for _, name := range names {
		s.dirty[name] = true
	}
	if s.opts.ManualFlush {
		return nil
	}
	return s.flushLocked(ctx)
}

func (s *Store) flushLocked(ctx context.Context) error {
	if s.closed {
		return fmt.Errorf("store is closed")
	}
	var errs []error
	for _, name := range Records {
		if !s.dirty[name] {
			continue
		}
		data, err := json.MarshalIndent(s.recordValue(name), "", "  ")
		if err != nil {
			errs = append(errs, fmt.Errorf("serialize %s: %w", name, err))
			continue
		}
		if err := s.backend.Put(ctx, name, data); err != nil {
			errs = append(errs, err)
			continue
		}
		delete(s.dirty, name)
	}
	return errors.Join(errs...)
}

// Flush writes every pending record.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

// Dirty reports whether any record is waiting for Flush.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0
}

// Close flushes pending records and closes the backend. Calling Close twice
// is a no-op.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	flushErr := s.flushLocked(ctx)
	s.closed = true
	return errors.Join(flushErr, s.backend.Close())
}

func newID() string {
	return uuid.NewString()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %w: %s", kind, ErrNotFound, id)
}

// insertAt places v at index i, appending when i is out of range.
func insertAt[T any](items []T, i int, v T) []T {
	if i < 0 || i >= len(items) {
		return append(items, v)
	}
	items = append(items, v)
	copy(items[i+1:], items[i:])
	items[i] = v
	return items
}

// ============================================================================
// Settings
// ============================================================================

// DarkMode returns the stored flag, falling back to Options.DefaultDarkMode.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.DarkMode != nil {
		return *s.settings.DarkMode
	}
	if s.opts.DefaultDarkMode != nil {
		return s.opts.DefaultDarkMode()
	}
	return false
}

// SetDarkMode stores the dark-mode flag.
func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.DarkMode = &on
	return s.persistLocked(ctx, RecordSettings)
}

// ToggleDarkMode flips the flag and returns the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	on := !s.DarkMode()
	return on, s.SetDarkMode(ctx, on)
}
