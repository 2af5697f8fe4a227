// Package ui provides the terminal interface for productivelife.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"productivelife/internal/affirm"
	"productivelife/internal/config"
	"productivelife/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneHabits
	PaneGoals
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all three panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	Theme                 *config.ThemeConfig
	ConfirmDeletions      bool
	HideHelpBar           bool
	ShowAffirmation       bool
	NarrowLayoutThreshold int
}

// AppConfigFrom copies the UI-relevant settings out of cfg.
func AppConfigFrom(cfg *config.Config) *AppConfig {
	return &AppConfig{
		Keys:                  &cfg.Keys,
		Theme:                 &cfg.Theme,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		HideHelpBar:           cfg.UX.HideHelpBar,
		ShowAffirmation:       cfg.UX.ShowAffirmation,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}
}

// App is the main application model that coordinates all panes.
type App struct {
	ctx         context.Context
	store       *storage.Store
	styles      *Styles
	config      *AppConfig
	taskPane    *TaskPane
	habitsPane  *HabitsPane
	goalsPane   *GoalsPane
	helpOverlay *HelpOverlay
	undoManager *UndoManager
	undoBusy    bool
	rolling     bool
	picker      *affirm.Picker
	affirmation string
	confirmDel  *confirmDeleteState
	activePane  PaneID
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane x ranges for mouse hit testing.
	tasksPaneStart  int
	tasksPaneEnd    int
	habitsPaneStart int
	habitsPaneEnd   int
	goalsPaneStart  int
	goalsPaneEnd    int
	contentTop      int
}

type confirmDeleteState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates the application model. Data loading is deferred to Init.
func NewApp(ctx context.Context, store *storage.Store, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			ConfirmDeletions:      true,
			ShowAffirmation:       true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	taskPane := NewTaskPane(ctx, store, styles, cfg.Keys)
	habitsPane := NewHabitsPane(ctx, store, styles, cfg.Keys)
	goalsPane := NewGoalsPane(ctx, store, styles, cfg.Keys)
	global := NewGlobalKeyMap(cfg.Keys)

	app := &App{
		ctx:         ctx,
		store:       store,
		styles:      styles,
		config:      cfg,
		taskPane:    taskPane,
		habitsPane:  habitsPane,
		goalsPane:   goalsPane,
		helpOverlay: NewHelpOverlay(styles, global, taskPane.keys, habitsPane.keys, goalsPane.keys, NewInputKeyMap(cfg.Keys)),
		undoManager: NewUndoManager(),
		picker:      affirm.New(),
		activePane:  PaneTasks,
		keys:        global,
		helpKeys:    DefaultHelpKeyMap(),
	}
	app.pickAffirmation()
	app.setActivePane(PaneTasks)
	return app
}

func (a *App) pickAffirmation() {
	if a.config.ShowAffirmation {
		a.affirmation = a.picker.Text(a.store.Affirmations())
	}
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) loadAll() tea.Cmd {
	return tea.Batch(
		a.taskPane.LoadTasksCmd(),
		a.habitsPane.LoadHabitsCmd(),
		a.goalsPane.LoadGoalsCmd(),
	)
}

// Init initializes the app and loads all data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tickCmd(), a.loadAll())
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Store results go to their pane whichever pane is active.
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		return a, a.taskPane.Update(msg)

	case taskAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add task: "+msg.err.Error(), true)
			return a, nil
		}
		return a, a.taskPane.Update(msg)

	case taskToggledMsg:
		if msg.err != nil {
			a.SetStatus("Toggle task: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewToggleTaskAction(a.ctx, a.store, msg.task))
		return a, a.taskPane.Update(msg)

	case taskEditedMsg:
		if msg.err != nil {
			a.SetStatus("Edit task: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewEditTaskAction(a.ctx, a.store, msg.before, msg.after))
		return a, a.taskPane.Update(msg)

	case taskDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete task: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewDeleteTaskAction(a.ctx, a.store, msg.task, msg.index))
		return a, a.taskPane.Update(msg)

	case habitsLoadedMsg:
		return a, a.habitsPane.Update(msg)

	case habitAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add habit: "+msg.err.Error(), true)
			return a, nil
		}
		return a, a.habitsPane.Update(msg)

	case habitToggledMsg:
		if msg.err != nil {
			a.SetStatus("Toggle habit: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewToggleHabitAction(a.ctx, a.store, msg.before, msg.after))
		return a, a.habitsPane.Update(msg)

	case habitDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete habit: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewDeleteHabitAction(a.ctx, a.store, msg.habit, msg.index))
		return a, a.habitsPane.Update(msg)

	case goalsLoadedMsg:
		return a, a.goalsPane.Update(msg)

	case goalAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add goal: "+msg.err.Error(), true)
			return a, nil
		}
		return a, a.goalsPane.Update(msg)

	case goalToggledMsg:
		if msg.err != nil {
			a.SetStatus("Toggle goal: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewToggleGoalAction(a.ctx, a.store, msg.goal))
		return a, a.goalsPane.Update(msg)

	case goalDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete goal: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewDeleteGoalAction(a.ctx, a.store, msg.goal, msg.index))
		return a, a.goalsPane.Update(msg)

	case darkModeMsg:
		if msg.err != nil {
			a.SetStatus("Dark mode: "+msg.err.Error(), true)
			return a, nil
		}
		*a.styles = *NewStyles(a.config.Theme, msg.on)
		if msg.on {
			a.SetStatus("Dark mode on", false)
		} else {
			a.SetStatus("Dark mode off", false)
		}
		return a, nil

	case rolloverMsg:
		a.rolling = false
		if msg.err != nil {
			a.SetStatus("New day: "+msg.err.Error(), true)
			return a, nil
		}
		// History recorded yesterday no longer matches the data.
		a.undoManager.Clear()
		a.pickAffirmation()
		if msg.result.Changed() {
			a.SetStatus("Good morning! Daily items were reset", false)
		}
		return a, a.loadAll()

	case undoResultMsg:
		a.undoBusy = false
		switch {
		case msg.err != nil:
			a.SetStatus("Undo failed: "+msg.err.Error(), true)
		case msg.desc != "":
			a.SetStatus("Undid: "+msg.desc, false)
		default:
			a.SetStatus("Nothing to undo", false)
		}
		return a, a.loadAll()

	case redoResultMsg:
		a.undoBusy = false
		switch {
		case msg.err != nil:
			a.SetStatus("Redo failed: "+msg.err.Error(), true)
		case msg.desc != "":
			a.SetStatus("Redid: "+msg.desc, false)
		default:
			a.SetStatus("Nothing to redo", false)
		}
		return a, a.loadAll()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				cmd := a.confirmDel.cmd
				a.confirmDel = nil
				return a, cmd
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
			}
			return a, nil
		}

		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
			}
			return a, nil
		}

		if !a.inInputMode() {
			if cmd, handled := a.handleGlobalKey(msg); handled {
				return a, cmd
			}
		}
		return a, a.activePaneUpdate(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		cmds := []tea.Cmd{tickCmd()}
		if !a.rolling && a.store.Today() != a.store.LastReset() {
			a.rolling = true
			cmds = append(cmds, rolloverCmd(a.ctx, a.store))
		}
		return a, tea.Batch(cmds...)
	}

	// Anything else, such as cursor blink, goes to the active pane.
	return a, a.activePaneUpdate(msg)
}

func (a *App) inInputMode() bool {
	return a.taskPane.IsAdding() || a.habitsPane.IsAdding() || a.goalsPane.IsAdding()
}

func (a *App) activePaneUpdate(msg tea.Msg) tea.Cmd {
	switch a.activePane {
	case PaneTasks:
		return a.taskPane.Update(msg)
	case PaneHabits:
		return a.habitsPane.Update(msg)
	case PaneGoals:
		return a.goalsPane.Update(msg)
	}
	return nil
}

// handleGlobalKey processes keys that are not pane-specific. It reports
// whether the key was consumed.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if a.config.ConfirmDeletions {
		if state, ok := a.deleteConfirmation(msg); ok {
			a.confirmDel = state
			return nil, true
		}
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil, true

	case key.Matches(msg, a.keys.NextPane):
		a.setActivePane((a.activePane + 1) % 3)
		return nil, true

	case key.Matches(msg, a.keys.Pane1):
		a.setActivePane(PaneTasks)
		return nil, true

	case key.Matches(msg, a.keys.Pane2):
		a.setActivePane(PaneHabits)
		return nil, true

	case key.Matches(msg, a.keys.Pane3):
		a.setActivePane(PaneGoals)
		return nil, true

	case key.Matches(msg, a.keys.DarkMode):
		return toggleDarkModeCmd(a.ctx, a.store), true

	case key.Matches(msg, a.keys.Undo):
		if a.undoBusy {
			a.SetStatus("Undo: busy", true)
			return nil, true
		}
		a.undoBusy = true
		return undoCmd(a.undoManager), true

	case key.Matches(msg, a.keys.Redo):
		if a.undoBusy {
			a.SetStatus("Redo: busy", true)
			return nil, true
		}
		a.undoBusy = true
		return redoCmd(a.undoManager), true
	}
	return nil, false
}

// deleteConfirmation builds the confirm dialog when msg is the active
// pane's delete key and something is selected.
func (a *App) deleteConfirmation(msg tea.KeyMsg) (*confirmDeleteState, bool) {
	switch a.activePane {
	case PaneTasks:
		if !key.Matches(msg, a.taskPane.keys.Delete) {
			return nil, false
		}
		task, ok := a.taskPane.Selected()
		if !ok {
			return nil, false
		}
		return &confirmDeleteState{
			title: "Delete task?",
			body:  truncateText(task.Text, 60),
			cmd:   deleteTaskCmd(a.ctx, a.store, task.ID),
		}, true

	case PaneHabits:
		if !key.Matches(msg, a.habitsPane.keys.Delete) {
			return nil, false
		}
		habit, ok := a.habitsPane.Selected()
		if !ok {
			return nil, false
		}
		return &confirmDeleteState{
			title: "Delete habit?",
			body:  truncateText(habit.Name, 60) + fmt.Sprintf(" (streak %d)", habit.Streak),
			cmd:   deleteHabitCmd(a.ctx, a.store, habit.ID),
		}, true

	case PaneGoals:
		if !key.Matches(msg, a.goalsPane.keys.Delete) {
			return nil, false
		}
		goal, ok := a.goalsPane.Selected()
		if !ok {
			return nil, false
		}
		return &confirmDeleteState{
			title: "Delete goal?",
			body:  truncateText(goal.Title, 60),
			cmd:   deleteGoalCmd(a.ctx, a.store, goal.ID),
		}, true
	}
	return nil, false
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.confirmDel != nil {
		if msg.Action == tea.MouseActionPress {
			a.confirmDel = nil
			a.SetStatus("Canceled", false)
		}
		return nil
	}
	if a.showHelp {
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return nil
	}

	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown
	if msg.Action != tea.MouseActionPress && !wheel {
		return nil
	}

	if !wheel {
		if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
			tabWidth := a.width / 3
			switch {
			case msg.X < tabWidth:
				a.setActivePane(PaneTasks)
			case msg.X < tabWidth*2:
				a.setActivePane(PaneHabits)
			default:
				a.setActivePane(PaneGoals)
			}
			return nil
		}
		if clicked := a.paneAtPosition(msg.X); clicked >= 0 && clicked != a.activePane {
			a.setActivePane(clicked)
		}
	}

	if msg.Y < a.contentTop {
		return nil
	}
	local := msg
	local.Y = msg.Y - a.contentTop
	if a.layoutMode == LayoutWide {
		switch a.activePane {
		case PaneHabits:
			local.X = msg.X - a.habitsPaneStart
		case PaneGoals:
			local.X = msg.X - a.goalsPaneStart
		}
	}
	return a.activePaneUpdate(local)
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane
	a.taskPane.SetFocused(pane == PaneTasks)
	a.habitsPane.SetFocused(pane == PaneHabits)
	a.goalsPane.SetFocused(pane == PaneGoals)
}

// paneAtPosition returns which pane is at the given X coordinate, or -1.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		return a.activePane
	}
	switch {
	case x >= a.tasksPaneStart && x < a.tasksPaneEnd:
		return PaneTasks
	case x >= a.habitsPaneStart && x < a.habitsPaneEnd:
		return PaneHabits
	case x >= a.goalsPaneStart && x < a.goalsPaneEnd:
		return PaneGoals
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// title bar, affirmation line and help bar
	contentHeight := a.height - 5
	if contentHeight < 10 {
		contentHeight = 10
	}
	a.contentTop = 2

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	if a.width < threshold {
		a.layoutMode = LayoutNarrow

		narrowHeight := max(contentHeight-1, 8)
		paneWidth := max(totalWidth, 20)

		a.taskPane.SetSize(paneWidth, narrowHeight)
		a.habitsPane.SetSize(paneWidth, narrowHeight)
		a.goalsPane.SetSize(paneWidth, narrowHeight)

		a.tasksPaneStart, a.tasksPaneEnd = 0, a.width
		a.habitsPaneStart, a.habitsPaneEnd = 0, a.width
		a.goalsPaneStart, a.goalsPaneEnd = 0, a.width
		// tab bar
		a.contentTop = 3
		return
	}

	a.layoutMode = LayoutWide

	var tasksWidth, habitsWidth, goalsWidth int
	if totalWidth < 120 {
		tasksWidth = (totalWidth * 36) / 100
		habitsWidth = (totalWidth * 34) / 100
		goalsWidth = totalWidth - tasksWidth - habitsWidth - 2
	} else {
		tasksWidth = min((totalWidth*36)/100, 55)
		habitsWidth = min((totalWidth*34)/100, 55)
		goalsWidth = min(totalWidth-tasksWidth-habitsWidth-2, 50)
	}

	a.taskPane.SetSize(tasksWidth, contentHeight)
	a.habitsPane.SetSize(habitsWidth, contentHeight)
	a.goalsPane.SetSize(goalsWidth, contentHeight)

	a.tasksPaneStart = 0
	a.tasksPaneEnd = tasksWidth
	a.habitsPaneStart = tasksWidth + 1
	a.habitsPaneEnd = a.habitsPaneStart + habitsWidth
	a.goalsPaneStart = a.habitsPaneEnd + 1
	a.goalsPaneEnd = a.goalsPaneStart + goalsWidth
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}
	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(a.styles.AffirmationStyle.Render(a.affirmation))
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}

	if bar := a.renderHelpBar(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}
	return b.String()
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlayStyle.Render(b.String()))
}

// renderWideContent renders all three panes side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.taskPane.View(), " ", a.habitsPane.View(), " ", a.goalsPane.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder
	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")
	switch a.activePane {
	case PaneTasks:
		b.WriteString(a.taskPane.View())
	case PaneHabits:
		b.WriteString(a.habitsPane.View())
	case PaneGoals:
		b.WriteString(a.goalsPane.View())
	}
	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneTasks, "Tasks"},
		{PaneHabits, "Habits"},
		{PaneGoals, "Goals"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.id == a.activePane {
			parts = append(parts, activeTabStyle.Render("["+tab.label+"]"))
		} else {
			parts = append(parts, inactiveTabStyle.Render(" "+tab.label+" "))
		}
	}

	tabBar := strings.Join(parts, "  ")
	if padding := (a.width - lipgloss.Width(tabBar)) / 2; padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}
	return tabBar
}

// renderGoodbye shows the exit message with a summary of the day.
func (a *App) renderGoodbye() string {
	st := a.store.Stats()

	var b strings.Builder
	b.WriteString("\n  See you later!\n\n")

	if st.HabitsTotal > 0 || st.CompletedToday > 0 || st.GoalsTotal > 0 {
		b.WriteString("  Today's progress:\n")
		b.WriteString(fmt.Sprintf("     Tasks done:  %d\n", st.CompletedToday))
		if st.HabitsTotal > 0 {
			pct := (st.HabitsDone * 100) / st.HabitsTotal
			b.WriteString(fmt.Sprintf("     Habits:      %d/%d (%d%%)\n", st.HabitsDone, st.HabitsTotal, pct))
		}
		if st.GoalsTotal > 0 {
			b.WriteString(fmt.Sprintf("     Goals:       %d/%d\n", st.GoalsDone, st.GoalsTotal))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderTitleBar creates the top title bar with stats and the date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" productivelife ")

	st := a.store.Stats()
	items := []string{fmt.Sprintf("Active: %d", st.TasksActive)}
	if st.OverdueTasks > 0 {
		items = append(items, a.styles.ErrorStyle.Render(fmt.Sprintf("Overdue: %d", st.OverdueTasks)))
	}
	items = append(items, fmt.Sprintf("Done today: %d", st.CompletedToday))
	if st.HabitsTotal > 0 {
		items = append(items, fmt.Sprintf("Habits: %d/%d", st.HabitsDone, st.HabitsTotal))
	}
	if st.BestStreak > 0 {
		items = append(items, fmt.Sprintf("Best streak: %d", st.BestStreak))
	}
	if st.GoalsTotal > 0 {
		items = append(items, fmt.Sprintf("Goals: %d/%d", st.GoalsDone, st.GoalsTotal))
	}
	stats := a.styles.StatLabelStyle.Render(strings.Join(items, "  "))

	date := a.styles.DateStyle.Render(a.store.Now().Format("Mon Jan 2 · 15:04"))

	used := lipgloss.Width(title) + lipgloss.Width(stats) + lipgloss.Width(date)
	spacer := max(a.width-used-4, 2)

	return title + "  " + stats + strings.Repeat(" ", spacer) + date
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}
	if a.config.HideHelpBar {
		return ""
	}

	if a.inInputMode() {
		return a.styles.RenderHelp("enter", "next/save", "esc", "cancel")
	}

	switch a.activePane {
	case PaneTasks:
		return a.styles.RenderHelp(
			"a", "add",
			"d", "done",
			"e", "edit",
			"x", "del",
			"s", "sort",
			"tab", "pane",
			"?", "help",
		)
	case PaneHabits:
		return a.styles.RenderHelp(
			"a", "add",
			"space", "toggle",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneGoals:
		return a.styles.RenderHelp(
			"a", "add",
			"d", "done",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	}
	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, store *storage.Store, styles *Styles, cfg *AppConfig) error {
	app := NewApp(ctx, store, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
