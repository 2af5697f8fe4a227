// This file implements undo/redo with a command pattern: every undoable
// operation captures the state it needs to reverse itself.
package ui

import (
	"context"
	"sync"

	"productivelife/internal/model"
	"productivelife/internal/storage"

	"github.com/mattn/go-runewidth"
)

// maxHistorySize limits the undo stack.
const maxHistorySize = 50

// UndoableAction is one reversible operation.
type UndoableAction struct {
	Description string       // shown in the status bar
	Undo        func() error // reverses the action
	Redo        func() error // reapplies it; nil means it cannot be redone
}

// UndoManager maintains the undo/redo history stacks.
type UndoManager struct {
	mu        sync.Mutex
	undoStack []*UndoableAction
	redoStack []*UndoableAction
}

// NewUndoManager creates an empty history.
func NewUndoManager() *UndoManager {
	return &UndoManager{
		undoStack: make([]*UndoableAction, 0, maxHistorySize),
		redoStack: make([]*UndoableAction, 0, maxHistorySize),
	}
}

// Push records an action and clears the redo history.
func (m *UndoManager) Push(action *UndoableAction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.redoStack = m.redoStack[:0]
	if len(m.undoStack) >= maxHistorySize {
		m.undoStack = m.undoStack[1:]
	}
	m.undoStack = append(m.undoStack, action)
}

// CanUndo reports whether there is anything to undo.
func (m *UndoManager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo reports whether there is anything to redo.
func (m *UndoManager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// pop removes the top of stack under the lock.
func (m *UndoManager) pop(stack *[]*UndoableAction) *UndoableAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(*stack) == 0 {
		return nil
	}
	action := (*stack)[len(*stack)-1]
	*stack = (*stack)[:len(*stack)-1]
	return action
}

func (m *UndoManager) push(stack *[]*UndoableAction, action *UndoableAction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*stack = append(*stack, action)
}

// Undo reverses the most recent action and returns its description. It
// returns "" and nil when there is nothing to undo. A failed undo stays on
// the stack.
func (m *UndoManager) Undo() (string, error) {
	action := m.pop(&m.undoStack)
	if action == nil {
		return "", nil
	}
	if err := action.Undo(); err != nil {
		m.push(&m.undoStack, action)
		return "", err
	}
	if action.Redo != nil {
		m.push(&m.redoStack, action)
	}
	return action.Description, nil
}

// Redo reapplies the most recently undone action.
func (m *UndoManager) Redo() (string, error) {
	action := m.pop(&m.redoStack)
	if action == nil {
		return "", nil
	}
	if err := action.Redo(); err != nil {
		m.push(&m.redoStack, action)
		return "", err
	}
	m.push(&m.undoStack, action)
	return action.Description, nil
}

// Clear removes all history.
func (m *UndoManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
}

// =============================================================================
// Undoable Action Factories
// =============================================================================

// NewDeleteTaskAction undoes a deletion by reinserting the task where it was.
func NewDeleteTaskAction(ctx context.Context, store *storage.Store, task model.Task, index int) *UndoableAction {
	return &UndoableAction{
		Description: "Deleted task: " + truncateText(task.Text, 20),
		Undo: func() error {
			return store.RestoreTask(ctx, task, index)
		},
		Redo: func() error {
			_, _, err := store.DeleteTask(ctx, task.ID)
			return err
		},
	}
}

// NewToggleTaskAction undoes a completion toggle. task is the state after
// the toggle.
func NewToggleTaskAction(ctx context.Context, store *storage.Store, task model.Task) *UndoableAction {
	desc := "Uncompleted: "
	if task.Completed {
		desc = "Completed: "
	}
	toggle := func() error {
		_, err := store.ToggleTask(ctx, task.ID)
		return err
	}
	return &UndoableAction{
		Description: desc + truncateText(task.Text, 20),
		Undo:        toggle,
		Redo:        toggle,
	}
}

// NewEditTaskAction swaps between the two versions of an edited task.
func NewEditTaskAction(ctx context.Context, store *storage.Store, before, after model.Task) *UndoableAction {
	set := func(t model.Task) func() error {
		return func() error {
			_, err := store.UpdateTask(ctx, t.ID, func(cur *model.Task) { *cur = t })
			return err
		}
	}
	return &UndoableAction{
		Description: "Edited: " + truncateText(after.Text, 20),
		Undo:        set(before),
		Redo:        set(after),
	}
}

// NewToggleHabitAction restores the habit exactly as it was before the
// toggle, streak included.
func NewToggleHabitAction(ctx context.Context, store *storage.Store, before, after model.Habit) *UndoableAction {
	desc := "Uncompleted: "
	if after.CompletedToday {
		desc = "Completed: "
	}
	return &UndoableAction{
		Description: desc + truncateText(after.Name, 20),
		Undo: func() error {
			return store.PutHabit(ctx, before)
		},
		Redo: func() error {
			return store.PutHabit(ctx, after)
		},
	}
}

// NewDeleteHabitAction undoes a habit deletion, history included.
func NewDeleteHabitAction(ctx context.Context, store *storage.Store, habit model.Habit, index int) *UndoableAction {
	return &UndoableAction{
		Description: "Deleted habit: " + truncateText(habit.Name, 20),
		Undo: func() error {
			return store.RestoreHabit(ctx, habit, index)
		},
		Redo: func() error {
			_, _, err := store.DeleteHabit(ctx, habit.ID)
			return err
		},
	}
}

// NewToggleGoalAction undoes a goal completion toggle.
func NewToggleGoalAction(ctx context.Context, store *storage.Store, goal model.Goal) *UndoableAction {
	desc := "Reopened: "
	if goal.Completed {
		desc = "Achieved: "
	}
	toggle := func() error {
		_, err := store.ToggleGoal(ctx, goal.ID)
		return err
	}
	return &UndoableAction{
		Description: desc + truncateText(goal.Title, 20),
		Undo:        toggle,
		Redo:        toggle,
	}
}

// NewDeleteGoalAction undoes a goal deletion.
func NewDeleteGoalAction(ctx context.Context, store *storage.Store, goal model.Goal, index int) *UndoableAction {
	return &UndoableAction{
		Description: "Deleted goal: " + truncateText(goal.Title, 20),
		Undo: func() error {
			return store.RestoreGoal(ctx, goal, index)
		},
		Redo: func() error {
			_, _, err := store.DeleteGoal(ctx, goal.ID)
			return err
		},
	}
}

// truncateText shortens text to maxLen cells with ".." if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}
