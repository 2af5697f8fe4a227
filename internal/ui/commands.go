// This file contains tea.Cmd factories that wrap Store operations. Each
// command returns a message type defined in messages.go.
package ui

import (
	"context"

	"productivelife/internal/model"
	"productivelife/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Task Commands
// =============================================================================

func loadTasksCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		return tasksLoadedMsg{tasks: store.Tasks()}
	}
}

func addTaskCmd(ctx context.Context, store *storage.Store, in storage.NewTask) tea.Cmd {
	return func() tea.Msg {
		task, err := store.AddTask(ctx, in)
		return taskAddedMsg{task: task, err: err}
	}
}

func toggleTaskCmd(ctx context.Context, store *storage.Store, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := store.ToggleTask(ctx, id)
		return taskToggledMsg{task: task, err: err}
	}
}

// editTaskCmd replaces a task's text, keeping every other field.
func editTaskCmd(ctx context.Context, store *storage.Store, before model.Task, text string) tea.Cmd {
	return func() tea.Msg {
		after, err := store.UpdateTask(ctx, before.ID, func(t *model.Task) {
			t.Text = text
		})
		return taskEditedMsg{before: before, after: after, err: err}
	}
}

func deleteTaskCmd(ctx context.Context, store *storage.Store, id string) tea.Cmd {
	return func() tea.Msg {
		task, index, err := store.DeleteTask(ctx, id)
		return taskDeletedMsg{task: task, index: index, err: err}
	}
}

// =============================================================================
// Habit Commands
// =============================================================================

func loadHabitsCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		return habitsLoadedMsg{habits: store.Habits()}
	}
}

func addHabitCmd(ctx context.Context, store *storage.Store, name string, freq model.Frequency, cat model.Category) tea.Cmd {
	return func() tea.Msg {
		habit, err := store.AddHabit(ctx, name, freq, cat)
		return habitAddedMsg{habit: habit, err: err}
	}
}

// toggleHabitCmd captures the habit before toggling so undo can restore it.
func toggleHabitCmd(ctx context.Context, store *storage.Store, before model.Habit) tea.Cmd {
	return func() tea.Msg {
		after, err := store.ToggleHabit(ctx, before.ID)
		return habitToggledMsg{before: before, after: after, err: err}
	}
}

func deleteHabitCmd(ctx context.Context, store *storage.Store, id string) tea.Cmd {
	return func() tea.Msg {
		habit, index, err := store.DeleteHabit(ctx, id)
		return habitDeletedMsg{habit: habit, index: index, err: err}
	}
}

// =============================================================================
// Goal Commands
// =============================================================================

func loadGoalsCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		return goalsLoadedMsg{goals: store.Goals()}
	}
}

func addGoalCmd(ctx context.Context, store *storage.Store, in storage.NewGoal) tea.Cmd {
	return func() tea.Msg {
		goal, err := store.AddGoal(ctx, in)
		return goalAddedMsg{goal: goal, err: err}
	}
}

func toggleGoalCmd(ctx context.Context, store *storage.Store, id string) tea.Cmd {
	return func() tea.Msg {
		goal, err := store.ToggleGoal(ctx, id)
		return goalToggledMsg{goal: goal, err: err}
	}
}

func deleteGoalCmd(ctx context.Context, store *storage.Store, id string) tea.Cmd {
	return func() tea.Msg {
		goal, index, err := store.DeleteGoal(ctx, id)
		return goalDeletedMsg{goal: goal, index: index, err: err}
	}
}

// =============================================================================
// App Commands
// =============================================================================

func toggleDarkModeCmd(ctx context.Context, store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		on, err := store.ToggleDarkMode(ctx)
		return darkModeMsg{on: on, err: err}
	}
}

func rolloverCmd(ctx context.Context, store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		res, err := store.Rollover(ctx)
		return rolloverMsg{result: res, err: err}
	}
}

func undoCmd(manager *UndoManager) tea.Cmd {
	return func() tea.Msg {
		desc, err := manager.Undo()
		return undoResultMsg{desc: desc, err: err}
	}
}

func redoCmd(manager *UndoManager) tea.Cmd {
	return func() tea.Msg {
		desc, err := manager.Redo()
		return redoResultMsg{desc: desc, err: err}
	}
}
