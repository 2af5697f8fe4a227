package ui

import (
	"context"
	"strings"

	"productivelife/internal/config"
	"productivelife/internal/model"
	"productivelife/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// GoalsPane lists daily and weekly goals in two sections.
type GoalsPane struct {
	ctx     context.Context
	goals   []model.Goal // daily goals first, then weekly
	cursor  int
	focused bool
	width   int
	height  int
	form    *form
	store   *storage.Store
	styles  *Styles

	keys GoalKeyMap
}

// NewGoalsPane creates a goals pane with key bindings from keyCfg.
func NewGoalsPane(ctx context.Context, store *storage.Store, styles *Styles, keyCfg *config.KeysConfig) *GoalsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &GoalsPane{
		ctx:    ctx,
		goals:  []model.Goal{},
		form:   newForm(NewInputKeyMap(keyCfg), styles),
		store:  store,
		styles: styles,
		keys:   NewGoalKeyMap(keyCfg),
	}
}

// LoadGoalsCmd returns a command that reads the goal list.
func (p *GoalsPane) LoadGoalsCmd() tea.Cmd {
	return loadGoalsCmd(p.store)
}

// setGoals orders goals so the cursor walks the sections top to bottom.
func (p *GoalsPane) setGoals(goals []model.Goal) {
	ordered := make([]model.Goal, 0, len(goals))
	for _, t := range []model.GoalType{model.GoalDaily, model.GoalWeekly} {
		for _, g := range goals {
			if g.Type == t {
				ordered = append(ordered, g)
			}
		}
	}
	p.goals = ordered
	if p.cursor >= len(p.goals) {
		p.cursor = max(0, len(p.goals)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *GoalsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.form.setWidth(width - 12)
}

// SetFocused sets whether this pane is focused.
func (p *GoalsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *GoalsPane) IsFocused() bool {
	return p.focused
}

// IsAdding reports whether the add form is open.
func (p *GoalsPane) IsAdding() bool {
	return p.form.active
}

// Selected returns the goal under the cursor.
func (p *GoalsPane) Selected() (model.Goal, bool) {
	if p.cursor < 0 || p.cursor >= len(p.goals) {
		return model.Goal{}, false
	}
	return p.goals[p.cursor], true
}

func (p *GoalsPane) startAdd() tea.Cmd {
	return p.form.start(
		formField{label: "Goal", placeholder: "e.g. Ship the release", charLimit: 100},
		formField{label: "Details", placeholder: "optional description", charLimit: 200, optional: true},
		formField{label: "Type", placeholder: "daily / weekly (default daily)", charLimit: 6, optional: true,
			validate: func(s string) string {
				if !model.GoalType(strings.ToLower(s)).Valid() {
					return "Type must be daily or weekly"
				}
				return ""
			}},
		formField{label: "Priority", placeholder: "low / medium / high (default medium)", charLimit: 6, optional: true,
			validate: func(s string) string {
				if _, err := model.ParsePriority(s); err != nil {
					return "Priority must be low, medium or high"
				}
				return ""
			}},
	)
}

func (p *GoalsPane) submitAdd() tea.Cmd {
	in := storage.NewGoal{
		Title:       p.form.value(0),
		Description: p.form.value(1),
		Type:        model.GoalType(strings.ToLower(p.form.value(2))),
		Priority:    model.PriorityMedium,
	}
	if in.Type == "" {
		in.Type = model.GoalDaily
	}
	if v := p.form.value(3); v != "" {
		in.Priority, _ = model.ParsePriority(v)
	}
	return addGoalCmd(p.ctx, p.store, in)
}

// Update handles messages for the goals pane.
func (p *GoalsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		p.setGoals(msg.goals)
		return nil
	case goalAddedMsg, goalToggledMsg, goalDeletedMsg:
		return p.LoadGoalsCmd()
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

	if msg, ok := msg.(tea.KeyMsg); ok {
		if cursor, ok := p.keys.move(msg, p.cursor, len(p.goals)); ok {
			p.cursor = cursor
			return nil
		}
		switch {
		case key.Matches(msg, p.keys.Add):
			return p.startAdd()

		case key.Matches(msg, p.keys.Toggle):
			if goal, ok := p.Selected(); ok {
				return toggleGoalCmd(p.ctx, p.store, goal.ID)
			}

		case key.Matches(msg, p.keys.Delete):
			if goal, ok := p.Selected(); ok {
				return deleteGoalCmd(p.ctx, p.store, goal.ID)
			}
		}
	}
	return nil
}

// View renders the goals pane.
func (p *GoalsPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("🎯 GOALS"))
	b.WriteString("\n")
	b.WriteString(separator(p.styles, p.width))
	b.WriteString("\n")

	if len(p.goals) == 0 && !p.form.active {
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  No goals yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		p.renderSection(&b, "Today", model.GoalDaily)
		p.renderSection(&b, "This week", model.GoalWeekly)
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

func (p *GoalsPane) renderSection(b *strings.Builder, title string, t model.GoalType) {
	b.WriteString("\n")
	b.WriteString(p.styles.SectionStyle.Render(title))
	b.WriteString("\n")

	empty := true
	for i, g := range p.goals {
		if g.Type != t {
			continue
		}
		empty = false
		b.WriteString(p.renderGoal(g, i == p.cursor && p.focused && !p.form.active))
		b.WriteString("\n")
	}
	if empty {
		b.WriteString(p.styles.StatLabelStyle.Render("  none"))
		b.WriteString("\n")
	}
}

func (p *GoalsPane) renderGoal(g model.Goal, selected bool) string {
	checkbox := p.styles.TaskCheckboxPending
	if g.Completed {
		checkbox = p.styles.TaskCheckboxDone
	}
	badge := " "
	switch g.Priority {
	case model.PriorityHigh:
		badge = p.styles.PriorityHighStyle.Render("!")
	case model.PriorityMedium:
		badge = p.styles.PriorityMediumStyle.Render("~")
	}

	text := g.Title
	if g.Description != "" {
		text += " - " + g.Description
	}
	if g.Completed && g.CompletedAt != nil {
		text += " (" + g.CompletedAt.Format("Jan 2 15:04") + ")"
	}

	if selected {
		return p.styles.TaskSelectedStyle.Render(" " + badge + checkbox + " " + text + " ")
	}
	if g.Completed {
		return " " + badge + checkbox + " " + p.styles.TaskDoneStyle.Render(text)
	}
	return " " + badge + checkbox + " " + p.styles.TaskPendingStyle.Render(text)
}
