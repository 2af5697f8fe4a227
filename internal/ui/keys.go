// This file defines key bindings using the bubbles key package so bindings
// can be matched, listed in help and overridden from config.
package ui

import (
	"strings"

	"productivelife/internal/config"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		switch trimmed := strings.TrimSpace(k); trimmed {
		case "":
		case "space":
			result = append(result, " ")
		default:
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// binding builds a key.Binding from a config override or the defaults. An
// override also replaces the key shown in help.
func binding(custom, help, desc string, defaults ...string) key.Binding {
	if custom = strings.TrimSpace(custom); custom != "" {
		help = custom
	}
	return key.NewBinding(
		key.WithKeys(parseKeys(custom, defaults...)...),
		key.WithHelp(help, desc),
	)
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	Pane3    key.Binding
	DarkMode key.Binding
	Undo     key.Binding
	Redo     key.Binding
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit:     binding(cfg.Quit, "q", "quit", "q", "ctrl+c"),
		Help:     binding(cfg.Help, "?", "help", "?"),
		NextPane: binding(cfg.NextPane, "tab", "next pane", "tab"),
		Pane1:    binding(cfg.Pane1, "1", "tasks", "1"),
		Pane2:    binding(cfg.Pane2, "2", "habits", "2"),
		Pane3:    binding(cfg.Pane3, "3", "goals", "3"),
		DarkMode: binding(cfg.DarkMode, "D", "dark mode", "D"),
		Undo:     binding(cfg.Undo, "ctrl+z", "undo", "ctrl+z", "u"),
		Redo:     binding(cfg.Redo, "ctrl+y", "redo", "ctrl+y"),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based panes)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	return NavigationKeyMap{
		Up:     binding(cfg.Up, "k/↑", "up", "k", "up"),
		Down:   binding(cfg.Down, "j/↓", "down", "j", "down"),
		Top:    binding(cfg.Top, "g", "top", "g"),
		Bottom: binding(cfg.Bottom, "G", "bottom", "G"),
	}
}

// move applies a navigation key to cursor over n items. It reports whether
// msg was a navigation key.
func (k NavigationKeyMap) move(msg tea.KeyMsg, cursor, n int) (int, bool) {
	switch {
	case key.Matches(msg, k.Down):
		return max(0, min(cursor+1, n-1)), true
	case key.Matches(msg, k.Up):
		return max(cursor-1, 0), true
	case key.Matches(msg, k.Top):
		return 0, true
	case key.Matches(msg, k.Bottom):
		return max(0, n-1), true
	}
	return cursor, false
}

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: binding(cfg.Confirm, "enter", "confirm", "enter"),
		Cancel:  binding(cfg.Cancel, "esc", "cancel", "esc"),
	}
}

// =============================================================================
// Pane Keys
// =============================================================================

// TaskKeyMap defines keys for the task pane.
type TaskKeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Edit   key.Binding
	Sort   key.Binding
	NavigationKeyMap
}

// NewTaskKeyMap creates task key bindings from config.
func NewTaskKeyMap(cfg *config.KeysConfig) TaskKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TaskKeyMap{
		Add:              binding(cfg.AddTask, "a", "add task", "a"),
		Toggle:           binding(cfg.ToggleTask, "d/space", "toggle done", "d", "enter", " "),
		Delete:           binding(cfg.DeleteTask, "x", "delete", "x"),
		Edit:             binding(cfg.EditTask, "e", "edit", "e"),
		Sort:             binding(cfg.SortTasks, "s", "sort", "s"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp implements help.KeyMap.
func (k TaskKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Sort}
}

// FullHelp implements help.KeyMap.
func (k TaskKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete, k.Edit, k.Sort},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// HabitKeyMap defines keys for the habits pane.
type HabitKeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	NavigationKeyMap
}

// NewHabitKeyMap creates habit key bindings from config.
func NewHabitKeyMap(cfg *config.KeysConfig) HabitKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return HabitKeyMap{
		Add:              binding(cfg.AddHabit, "a", "add habit", "a"),
		Toggle:           binding(cfg.ToggleHabit, "space", "toggle today", " ", "enter", "d"),
		Delete:           binding(cfg.DeleteHabit, "x", "delete", "x"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp implements help.KeyMap.
func (k HabitKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Down}
}

// FullHelp implements help.KeyMap.
func (k HabitKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// GoalKeyMap defines keys for the goals pane.
type GoalKeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	NavigationKeyMap
}

// NewGoalKeyMap creates goal key bindings from config.
func NewGoalKeyMap(cfg *config.KeysConfig) GoalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GoalKeyMap{
		Add:              binding(cfg.AddGoal, "a", "add goal", "a"),
		Toggle:           binding(cfg.ToggleGoal, "d/space", "toggle done", "d", "enter", " "),
		Delete:           binding(cfg.DeleteGoal, "x", "delete", "x"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp implements help.KeyMap.
func (k GoalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Down}
}

// FullHelp implements help.KeyMap.
func (k GoalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
