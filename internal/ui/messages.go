// This file defines message types for async store operations using the Bubble
// Tea command pattern. Every mutation runs in a tea.Cmd so disk writes never
// block the event loop.
package ui

import (
	"productivelife/internal/model"
	"productivelife/internal/streak"
)

// =============================================================================
// Undo/Redo Messages
// =============================================================================

type undoResultMsg struct {
	desc string
	err  error
}

type redoResultMsg struct {
	desc string
	err  error
}

// =============================================================================
// Task Messages
// =============================================================================

type tasksLoadedMsg struct {
	tasks []model.Task
}

type taskAddedMsg struct {
	task model.Task
	err  error
}

// taskToggledMsg carries the task after the toggle.
type taskToggledMsg struct {
	task model.Task
	err  error
}

// taskEditedMsg carries both versions so the edit can be undone.
type taskEditedMsg struct {
	before model.Task
	after  model.Task
	err    error
}

type taskDeletedMsg struct {
	task  model.Task
	index int // position before deletion, for undo
	err   error
}

// =============================================================================
// Habit Messages
// =============================================================================

type habitsLoadedMsg struct {
	habits []model.Habit
}

type habitAddedMsg struct {
	habit model.Habit
	err   error
}

// habitToggledMsg carries the habit before and after the toggle. Undo
// restores before exactly, streak included.
type habitToggledMsg struct {
	before model.Habit
	after  model.Habit
	err    error
}

type habitDeletedMsg struct {
	habit model.Habit
	index int
	err   error
}

// =============================================================================
// Goal Messages
// =============================================================================

type goalsLoadedMsg struct {
	goals []model.Goal
}

type goalAddedMsg struct {
	goal model.Goal
	err  error
}

type goalToggledMsg struct {
	goal model.Goal
	err  error
}

type goalDeletedMsg struct {
	goal  model.Goal
	index int
	err   error
}

// =============================================================================
// App Messages
// =============================================================================

type darkModeMsg struct {
	on  bool
	err error
}

// rolloverMsg reports a rollover run while the app was open past midnight.
type rolloverMsg struct {
	result streak.RolloverResult
	err    error
}
