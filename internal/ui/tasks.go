package ui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"productivelife/internal/config"
	"productivelife/internal/model"
	"productivelife/internal/storage"
	"productivelife/internal/streak"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Task form steps.
const (
	taskFieldText = iota
	taskFieldPriority
	taskFieldDue
	taskFieldRepeat
)

// TaskPane handles the task list display and interactions.
type TaskPane struct {
	ctx     context.Context
	tasks   []model.Task
	sort    streak.SortMode
	cursor  int
	focused bool
	width   int
	height  int
	form    *form
	editing *model.Task // set while the form edits an existing task
	store   *storage.Store
	styles  *Styles
	now     func() time.Time

	keys TaskKeyMap
}

// NewTaskPane creates a task pane with key bindings from keyCfg.
func NewTaskPane(ctx context.Context, store *storage.Store, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &TaskPane{
		ctx:     ctx,
		tasks:   []model.Task{},
		sort:    streak.SortByDueDate,
		focused: true,
		form:    newForm(NewInputKeyMap(keyCfg), styles),
		store:   store,
		styles:  styles,
		now:     store.Now,
		keys:    NewTaskKeyMap(keyCfg),
	}
}

// LoadTasksCmd returns a command that reads the task list.
func (p *TaskPane) LoadTasksCmd() tea.Cmd {
	return loadTasksCmd(p.store)
}

func (p *TaskPane) setTasks(tasks []model.Task) {
	p.tasks = streak.SortTasks(tasks, p.sort)
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.form.setWidth(width - 12)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TaskPane) IsFocused() bool {
	return p.focused
}

// IsAdding reports whether the add or edit form is open.
func (p *TaskPane) IsAdding() bool {
	return p.form.active
}

// SortMode returns the current ordering.
func (p *TaskPane) SortMode() streak.SortMode {
	return p.sort
}

// Selected returns the task under the cursor.
func (p *TaskPane) Selected() (model.Task, bool) {
	if p.cursor < 0 || p.cursor >= len(p.tasks) {
		return model.Task{}, false
	}
	return p.tasks[p.cursor], true
}

func (p *TaskPane) startAdd() tea.Cmd {
	p.editing = nil
	return p.form.start(
		formField{label: "Task", placeholder: "What needs to be done?", charLimit: 200},
		formField{label: "Priority", placeholder: "low / medium / high (default medium)", charLimit: 6, optional: true,
			validate: func(s string) string {
				if _, err := model.ParsePriority(s); err != nil {
					return "Priority must be low, medium or high"
				}
				return ""
			}},
		formField{label: "Due", placeholder: "YYYY-MM-DD (optional)", charLimit: 10, optional: true,
			validate: func(s string) string {
				if !model.ValidDate(s) {
					return "Due date must be YYYY-MM-DD"
				}
				return ""
			}},
		formField{label: "Repeat daily?", placeholder: "y/N", charLimit: 3, optional: true},
	)
}

func (p *TaskPane) submitAdd() tea.Cmd {
	in := storage.NewTask{
		Text:        p.form.value(taskFieldText),
		Priority:    model.PriorityMedium,
		DueDate:     p.form.value(taskFieldDue),
		IsRepeating: isYes(p.form.value(taskFieldRepeat)),
	}
	if v := p.form.value(taskFieldPriority); v != "" {
		in.Priority, _ = model.ParsePriority(v)
	}
	return addTaskCmd(p.ctx, p.store, in)
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		p.setTasks(msg.tasks)
		return nil
	case taskAddedMsg, taskToggledMsg, taskEditedMsg, taskDeletedMsg:
		return p.LoadTasksCmd()
	}

	if p.form.active {
		res, cmd := p.form.update(msg)
		if res != formDone {
			return cmd
		}
		if p.editing != nil {
			before := *p.editing
			p.editing = nil
			return editTaskCmd(p.ctx, p.store, before, p.form.value(0))
		}
		return p.submitAdd()
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		if cursor, ok := p.keys.move(msg, p.cursor, len(p.tasks)); ok {
			p.cursor = cursor
			return nil
		}
		switch {
		case key.Matches(msg, p.keys.Add):
			return p.startAdd()

		case key.Matches(msg, p.keys.Sort):
			p.sort = p.sort.Next()
			p.setTasks(p.tasks)
			p.cursor = 0

		case key.Matches(msg, p.keys.Toggle):
			if task, ok := p.Selected(); ok {
				return toggleTaskCmd(p.ctx, p.store, task.ID)
			}

		case key.Matches(msg, p.keys.Edit):
			if task, ok := p.Selected(); ok {
				p.editing = &task
				return p.form.start(formField{label: "Edit", charLimit: 200, value: task.Text})
			}

		case key.Matches(msg, p.keys.Delete):
			if task, ok := p.Selected(); ok {
				return deleteTaskCmd(p.ctx, p.store, task.ID)
			}
		}
	}

	return nil
}

// visibleRange mirrors the windowing used by View so clicks map to rows.
func (p *TaskPane) visibleRange() (start, rows int) {
	rows = p.height - 6 // title, separator, summary and borders
	if rows < 3 {
		rows = 5
	}
	if p.cursor >= rows {
		start = p.cursor - rows + 1
	}
	return start, rows
}

func (p *TaskPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.tasks) == 0 {
		return nil
	}
	const headerRows = 2

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.tasks)-1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		start, rows := p.visibleRange()
		row := msg.Y - headerRows
		if row < 0 || row >= rows || start+row >= len(p.tasks) {
			return nil
		}
		p.cursor = start + row
		// Clicking the checkbox toggles.
		if msg.X < 5 {
			return toggleTaskCmd(p.ctx, p.store, p.tasks[p.cursor].ID)
		}
	}
	return nil
}

// View renders the task pane.
func (p *TaskPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("✅ TASKS"))
	b.WriteString(p.styles.StatLabelStyle.Render("  by " + sortLabel(p.sort)))
	b.WriteString("\n")
	b.WriteString(separator(p.styles, p.width))
	b.WriteString("\n")

	if len(p.tasks) == 0 && !p.form.active {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else if len(p.tasks) > 0 {
		start, rows := p.visibleRange()
		now := p.now()
		for i := start; i < len(p.tasks) && i < start+rows; i++ {
			b.WriteString(p.renderTask(p.tasks[i], i == p.cursor && p.focused && !p.form.active, now))
			b.WriteString("\n")
		}

		active, done := 0, 0
		for _, t := range p.tasks {
			if t.Completed {
				done++
			} else {
				active++
			}
		}
		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render(fmt.Sprintf("%d active · %d done", active, done)))
		b.WriteString("\n")
	}

	if p.form.active {
		b.WriteString("\n")
		b.WriteString(p.form.View())
		b.WriteString("\n")
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

func (p *TaskPane) renderTask(task model.Task, selected bool, now time.Time) string {
	badge := p.formatPriorityBadge(task.Priority)
	checkbox := p.styles.TaskCheckboxPending
	if task.Completed {
		checkbox = p.styles.TaskCheckboxDone
	}
	repeat := " "
	if task.IsRepeating {
		repeat = p.styles.RepeatBadge
	}

	due := ""
	if !task.Completed {
		due = p.formatDueDate(task.DueDate, now)
	}
	dueWidth := lipgloss.Width(due)

	// [space][priority][checkbox][repeat][space][text][pad][due]
	fixed := 7
	if dueWidth > 0 {
		fixed += dueWidth + 1
	}
	textWidth := max(5, p.width-4-fixed)
	text := runewidth.Truncate(task.Text, textWidth, "..")
	pad := ""
	if dueWidth > 0 {
		pad = strings.Repeat(" ", max(1, textWidth-runewidth.StringWidth(text)))
	}

	if selected {
		return p.styles.TaskSelectedStyle.Render(" " + badge + checkbox + repeat + " " + text + pad + due + " ")
	}
	styled := p.styles.TaskPendingStyle.Render(text)
	if task.Completed {
		styled = p.styles.TaskDoneStyle.Render(text)
	}
	return " " + badge + checkbox + repeat + " " + styled + pad + due
}

// formatPriorityBadge returns "!" for high, "~" for medium and " " for low.
func (p *TaskPane) formatPriorityBadge(priority model.Priority) string {
	switch priority {
	case model.PriorityHigh:
		return p.styles.PriorityHighStyle.Render("!")
	case model.PriorityMedium:
		return p.styles.PriorityMediumStyle.Render("~")
	default:
		return " "
	}
}

// formatDueDate returns a compact due indicator: "!" overdue, "T" today,
// "+1" tomorrow, "3d", "2w" or ">1m". Undated tasks get "".
func (p *TaskPane) formatDueDate(dueDate string, now time.Time) string {
	if dueDate == "" {
		return ""
	}
	if streak.IsOverdue(dueDate, now) {
		return p.styles.DueDateOverdueStyle.Render("!")
	}
	due, err := model.ParseDate(dueDate, now.Location())
	if err != nil {
		return ""
	}
	days := int(math.Round(due.Sub(model.StartOfDay(now)).Hours() / 24))

	switch {
	case days == 0:
		return p.styles.DueDateTodayStyle.Render("T")
	case days == 1:
		return p.styles.DueDateFutureStyle.Render("+1")
	case days <= 7:
		return p.styles.DueDateFutureStyle.Render(fmt.Sprintf("%dd", days))
	case days <= 30:
		return p.styles.DueDateFutureStyle.Render(fmt.Sprintf("%dw", days/7))
	default:
		return p.styles.DueDateFutureStyle.Render(">1m")
	}
}

func sortLabel(m streak.SortMode) string {
	if m == streak.SortByPriority {
		return "priority"
	}
	return "due date"
}

// separator renders a horizontal rule sized to a pane.
func separator(styles *Styles, width int) string {
	w := width - 4
	if w < 10 {
		w = 30
	}
	return lipgloss.NewStyle().Foreground(styles.ColorMuted).Render(strings.Repeat("─", w))
}
