// Package transfer reads and writes the portable export document: one JSON
// object holding every collection.
//
// Each top-level key is optional on import. A key that is absent (or null)
// leaves the matching collection alone; a key that is present replaces it
// wholesale. Any parse or validation failure rejects the whole document and
// changes nothing.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"productivelife/internal/fsutil"
	"productivelife/internal/model"
	"productivelife/internal/storage"
)

// DefaultFileName is the export file name used when none is given.
const DefaultFileName = "productivity-data.json"

// ErrMalformedImport marks an import document that could not be parsed or
// failed validation.
var ErrMalformedImport = errors.New("invalid file format")

// Document is the export format.
type Document struct {
	Tasks          []model.Task         `json:"tasks"`
	Habits         []model.Habit        `json:"habits"`
	Goals          []model.Goal         `json:"goals"`
	JournalEntries []model.JournalEntry `json:"journalEntries"`
	Affirmations   []model.Affirmation  `json:"affirmations"`
}

// Document keys in export order.
const (
	KeyTasks          = "tasks"
	KeyHabits         = "habits"
	KeyGoals          = "goals"
	KeyJournalEntries = "journalEntries"
	KeyAffirmations   = "affirmations"
)

// Snapshotter is anything that can hand out a copy of every collection.
type Snapshotter interface {
	Snapshot() storage.Snapshot
}

// Replacer is anything that can swap whole collections in.
type Replacer interface {
	Replace(ctx context.Context, p storage.Patch) error
}

// NewDocument builds an export document from snap. Empty collections are
// written as [] rather than null.
func NewDocument(snap storage.Snapshot) Document {
	doc := Document{
		Tasks:          snap.Tasks,
		Habits:         snap.Habits,
		Goals:          snap.Goals,
		JournalEntries: snap.JournalEntries,
		Affirmations:   snap.Affirmations,
	}
	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	if doc.Habits == nil {
		doc.Habits = []model.Habit{}
	}
	if doc.Goals == nil {
		doc.Goals = []model.Goal{}
	}
	if doc.JournalEntries == nil {
		doc.JournalEntries = []model.JournalEntry{}
	}
	if doc.Affirmations == nil {
		doc.Affirmations = []model.Affirmation{}
	}
	for i := range doc.Habits {
		if doc.Habits[i].CompletedDates == nil {
			doc.Habits[i].CompletedDates = []string{}
		}
	}
	return doc
}

// Export writes src's collections to w as indented JSON.
func Export(w io.Writer, src Snapshotter) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(src.Snapshot())); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// ExportFile writes the export document to path atomically.
func ExportFile(path string, src Snapshotter) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return fsutil.WriteJSON(path, NewDocument(src.Snapshot()), 0600, false)
}

// Summary counts the items per key found in an import document.
type Summary struct {
	// Keys lists the present keys in document order.
	Keys   []string
	Counts map[string]int
}

// Has reports whether key was present in the document.
func (s Summary) Has(key string) bool {
	_, ok := s.Counts[key]
	return ok
}

// Parse decodes and validates an import document without applying it.
func Parse(r io.Reader) (storage.Patch, Summary, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return storage.Patch{}, Summary{}, malformed("parse: %v", err)
	}
	if raw == nil {
		return storage.Patch{}, Summary{}, malformed("document is not a JSON object")
	}
	if dec.More() {
		return storage.Patch{}, Summary{}, malformed("trailing data after document")
	}

	var (
		p   storage.Patch
		sum = Summary{Counts: make(map[string]int)}
	)
	present := func(key string) (json.RawMessage, bool) {
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			return nil, false
		}
		return v, true
	}
	note := func(key string, n int) {
		sum.Keys = append(sum.Keys, key)
		sum.Counts[key] = n
	}

	if v, ok := present(KeyTasks); ok {
		var tasks []model.Task
		if err := decodeKey(KeyTasks, v, &tasks); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		if err := validateTasks(tasks); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		p.Tasks = &tasks
		note(KeyTasks, len(tasks))
	}
	if v, ok := present(KeyHabits); ok {
		var habits []model.Habit
		if err := decodeKey(KeyHabits, v, &habits); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		if err := validateHabits(habits); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		p.Habits = &habits
		note(KeyHabits, len(habits))
	}
	if v, ok := present(KeyGoals); ok {
		var goals []model.Goal
		if err := decodeKey(KeyGoals, v, &goals); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		if err := validateGoals(goals); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		p.Goals = &goals
		note(KeyGoals, len(goals))
	}
	if v, ok := present(KeyJournalEntries); ok {
		var entries []model.JournalEntry
		if err := decodeKey(KeyJournalEntries, v, &entries); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		if err := validateJournal(entries); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		p.JournalEntries = &entries
		note(KeyJournalEntries, len(entries))
	}
	if v, ok := present(KeyAffirmations); ok {
		var affs []model.Affirmation
		if err := decodeKey(KeyAffirmations, v, &affs); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		if err := validateAffirmations(affs); err != nil {
			return storage.Patch{}, Summary{}, err
		}
		p.Affirmations = &affs
		note(KeyAffirmations, len(affs))
	}
	return p, sum, nil
}

// Import parses r and, only if the whole document is valid, replaces the
// present collections in dst.
func Import(ctx context.Context, r io.Reader, dst Replacer) (Summary, error) {
	p, sum, err := Parse(r)
	if err != nil {
		return Summary{}, err
	}
	if p.Empty() {
		return sum, nil
	}
	if err := dst.Replace(ctx, p); err != nil {
		return Summary{}, fmt.Errorf("apply import: %w", err)
	}
	return sum, nil
}

// UnknownKeys returns top-level keys of a document that Import ignores.
func UnknownKeys(data []byte) []string {
	var raw map[string]json.RawMessage
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}
	var out []string
	for k := range raw {
		switch k {
		case KeyTasks, KeyHabits, KeyGoals, KeyJournalEntries, KeyAffirmations:
		default:
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func decodeKey(key string, data json.RawMessage, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return malformed("%s: %v", key, err)
	}
	return nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedImport, fmt.Sprintf(format, args...))
}
