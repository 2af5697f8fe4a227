package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"productivelife/internal/config"
	"productivelife/internal/model"
	"productivelife/internal/storage"
	"productivelife/internal/streak"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// HabitsPane handles habit tracking display and interactions.
type HabitsPane struct {
	ctx     context.Context
	habits  []model.Habit
	cursor  int
	focused bool
	width   int
	height  int
	form    *form
	store   *storage.Store
	styles  *Styles

	keys HabitKeyMap
}

// NewHabitsPane creates a habits pane with key bindings from keyCfg.
func NewHabitsPane(ctx context.Context, store *storage.Store, styles *Styles, keyCfg *config.KeysConfig) *HabitsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &HabitsPane{
		ctx:    ctx,
		habits: []model.Habit{},
		form:   newForm(NewInputKeyMap(keyCfg), styles),
		store:  store,
		styles: styles,
		keys:   NewHabitKeyMap(keyCfg),
	}
}

// LoadHabitsCmd returns a command that reads the habit list.
func (p *HabitsPane) LoadHabitsCmd() tea.Cmd {
	return loadHabitsCmd(p.store)
}

func (p *HabitsPane) setHabits(habits []model.Habit) {
	p.habits = habits
	if p.cursor >= len(p.habits) {
		p.cursor = max(0, len(p.habits)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *HabitsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.form.setWidth(width - 12)
}

// SetFocused sets whether this pane is focused.
func (p *HabitsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *HabitsPane) IsFocused() bool {
	return p.focused
}

// IsAdding reports whether the add form is open.
func (p *HabitsPane) IsAdding() bool {
	return p.form.active
}

// Selected returns the habit under the cursor.
func (p *HabitsPane) Selected() (model.Habit, bool) {
	if p.cursor < 0 || p.cursor >= len(p.habits) {
		return model.Habit{}, false
	}
	return p.habits[p.cursor], true
}

func categoryNames() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (p *HabitsPane) startAdd() tea.Cmd {
	return p.form.start(
		formField{label: "Habit", placeholder: "e.g. Exercise", charLimit: 40},
		formField{label: "Frequency", placeholder: "daily / weekly (default daily)", charLimit: 6, optional: true,
			validate: func(s string) string {
				if !model.Frequency(strings.ToLower(s)).Valid() {
					return "Frequency must be daily or weekly"
				}
				return ""
			}},
		formField{label: "Category", placeholder: categoryNames(), charLimit: 12, optional: true,
			validate: func(s string) string {
				if !model.Category(strings.ToLower(s)).Valid() {
					return "Category must be one of " + categoryNames()
				}
				return ""
			}},
	)
}

func (p *HabitsPane) submitAdd() tea.Cmd {
	freq := model.Frequency(strings.ToLower(p.form.value(1)))
	if freq == "" {
		freq = model.FrequencyDaily
	}
	cat := model.Category(strings.ToLower(p.form.value(2)))
	return addHabitCmd(p.ctx, p.store, p.form.value(0), freq, cat)
}

// Update handles messages for the habits pane.
func (p *HabitsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case habitsLoadedMsg:
		p.setHabits(msg.habits)
		return nil
	case habitAddedMsg, habitToggledMsg, habitDeletedMsg:
		return p.LoadHabitsCmd()
	}

	if p.form.active {
		res, cmd := p.form.update(msg)
		if res == formDone {
			return p.submitAdd()
		}
		return cmd
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		if cursor, ok := p.keys.move(msg, p.cursor, len(p.habits)); ok {
			p.cursor = cursor
			return nil
		}
		switch {
		case key.Matches(msg, p.keys.Add):
			return p.startAdd()

		case key.Matches(msg, p.keys.Toggle):
			if habit, ok := p.Selected(); ok {
				return toggleHabitCmd(p.ctx, p.store, habit.Clone())
			}

		case key.Matches(msg, p.keys.Delete):
			if habit, ok := p.Selected(); ok {
				return deleteHabitCmd(p.ctx, p.store, habit.ID)
			}
		}
	}

	return nil
}

func (p *HabitsPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.habits) == 0 {
		return nil
	}

	// title, separator, blank line
	const headerRows = 3

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.habits)-1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		row := msg.Y - headerRows
		if row < 0 || row >= len(p.habits) {
			return nil
		}
		p.cursor = row
		if msg.X < 4 {
			return toggleHabitCmd(p.ctx, p.store, p.habits[row].Clone())
		}
	}
	return nil
}

// View renders the habits pane.
func (p *HabitsPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("🔥 HABITS"))
	b.WriteString("\n")
	b.WriteString(separator(p.styles, p.width))
	b.WriteString("\n")

	now := p.store.Now()
	if len(p.habits) == 0 && !p.form.active {
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  No habits yet."))
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		best := 0
		for i, habit := range p.habits {
			best = max(best, habit.Streak)
			selected := i == p.cursor && p.focused && !p.form.active
			b.WriteString(p.renderHabit(habit, selected, now))
			b.WriteString("\n")
		}
		if best > 0 {
			b.WriteString("\n")
			b.WriteString("  " + p.styles.StatLabelStyle.Render("Best streak: ") +
				p.styles.HabitStreakStyle.Render(fmt.Sprintf("%d days 🔥", best)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + p.styles.StatLabelStyle.Render(dayLabels(now)))
	b.WriteString("\n")

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

func (p *HabitsPane) renderHabit(h model.Habit, selected bool, now time.Time) string {
	prefix := "  "
	if selected {
		prefix = "▶ "
	}
	icon := p.styles.HabitUndoneIcon
	if h.CompletedToday {
		icon = p.styles.HabitDoneIcon
	}

	line := fmt.Sprintf("%s%s %s  %s  %d/7", prefix, icon, h.Name,
		p.renderWeek(h, now), streak.WeeklyProgress(h, now))
	if h.Frequency == model.FrequencyWeekly {
		line += " wk"
	}
	if h.Streak > 1 {
		line += " " + p.styles.HabitStreakStyle.Render(fmt.Sprintf("🔥%d", h.Streak))
	}
	if h.Category != model.CategoryNone {
		line += " " + p.styles.CategoryStyle.Render(string(h.Category))
	}

	if selected {
		return p.styles.TaskSelectedStyle.Render(line)
	}
	return line
}

// renderWeek draws one dot per day for the last seven days, oldest first.
func (p *HabitsPane) renderWeek(h model.Habit, now time.Time) string {
	dots := make([]string, 0, 7)
	for _, day := range lastSevenDays(now) {
		if h.HasDate(model.Date(day)) {
			dots = append(dots, p.styles.HabitDoneIcon)
		} else {
			dots = append(dots, p.styles.HabitUndoneIcon)
		}
	}
	return strings.Join(dots, " ")
}

func lastSevenDays(now time.Time) []time.Time {
	start := model.StartOfDay(now)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i-6)
	}
	return days
}

// dayLabels returns single-letter weekday labels aligned with renderWeek.
func dayLabels(now time.Time) string {
	labels := make([]string, 0, 7)
	for _, day := range lastSevenDays(now) {
		labels = append(labels, day.Weekday().String()[:1])
	}
	return strings.Join(labels, " ")
}
