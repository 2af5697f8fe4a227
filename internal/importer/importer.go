// Package importer converts task exports from Todoist and Taskwarrior into
// productivelife tasks.
package importer

import (
	"context"
	"fmt"
	"io"

	"productivelife/internal/model"
	"productivelife/internal/storage"
)

// Result contains statistics about an import run.
type Result struct {
	Imported int      // tasks added
	Skipped  int      // rows that were not tasks, deleted, or empty
	Errors   []string // per-task failures
}

// Item is one parsed task before it is added to the store.
type Item struct {
	Task storage.NewTask
	Done bool
}

// Importer parses one external format.
type Importer interface {
	// Parse reads items without touching the store.
	Parse(r io.Reader) ([]Item, int, error)

	// Name returns the format name ("todoist", "taskwarrior").
	Name() string
}

// TaskStore is the part of the store an import writes to.
type TaskStore interface {
	AddTask(ctx context.Context, in storage.NewTask) (model.Task, error)
	ToggleTask(ctx context.Context, id string) (model.Task, error)
}

// Get returns the importer for format, or nil.
func Get(format string) Importer {
	switch format {
	case "todoist":
		return &Todoist{}
	case "taskwarrior":
		return &Taskwarrior{}
	default:
		return nil
	}
}

// Formats lists the supported import formats.
func Formats() []string {
	return []string{"todoist", "taskwarrior"}
}

// Run parses r with imp and adds every item to store. A failing item is
// recorded in the result and does not stop the run; a canceled context does.
func Run(ctx context.Context, imp Importer, r io.Reader, store TaskStore) (*Result, error) {
	items, skipped, err := imp.Parse(r)
	if err != nil {
		return nil, err
	}
	res := &Result{Skipped: skipped}
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		added, err := store.AddTask(ctx, it.Task)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", it.Task.Text, err))
			continue
		}
		if it.Done {
			if _, err := store.ToggleTask(ctx, added.ID); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("failed to mark %s as done: %v", it.Task.Text, err))
			}
		}
		res.Imported++
	}
	return res, nil
}
