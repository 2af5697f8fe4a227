package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders the keyboard shortcut screen from the active bindings.
type HelpOverlay struct {
	width  int
	height int
	styles *Styles

	global GlobalKeyMap
	tasks  TaskKeyMap
	habits HabitKeyMap
	goals  GoalKeyMap
	input  InputKeyMap
}

// NewHelpOverlay creates a help overlay listing the given bindings.
func NewHelpOverlay(styles *Styles, global GlobalKeyMap, tasks TaskKeyMap, habits HabitKeyMap, goals GoalKeyMap, input InputKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
		global: global,
		tasks:  tasks,
		habits: habits,
		goals:  goals,
		input:  input,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	section := func(name string, bindings ...key.Binding) {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kb := range bindings {
			if !kb.Enabled() {
				continue
			}
			help := kb.Help()
			b.WriteString(keyStyle.Render(help.Key) + descStyle.Render(help.Desc) + "\n")
		}
	}

	b.WriteString(titleStyle.Render("📖 productivelife - Keyboard Shortcuts"))
	b.WriteString("\n")

	g := h.global
	section("Global", g.NextPane, g.Pane1, g.Pane2, g.Pane3, g.Undo, g.Redo, g.DarkMode, g.Help, g.Quit)
	section("Tasks", h.tasks.Add, h.tasks.Toggle, h.tasks.Edit, h.tasks.Delete, h.tasks.Sort)
	section("Habits", h.habits.Add, h.habits.Toggle, h.habits.Delete)
	section("Goals", h.goals.Add, h.goals.Toggle, h.goals.Delete)
	nav := h.tasks.NavigationKeyMap
	section("Lists", nav.Up, nav.Down, nav.Top, nav.Bottom)
	section("Input Mode", h.input.Confirm, h.input.Cancel)

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to close"))

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, overlayStyle.Render(b.String()))
}
