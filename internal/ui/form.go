package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField is one prompt in a form.
type formField struct {
	label       string
	placeholder string
	charLimit   int
	// value pre-fills the input.
	value string
	// optional fields accept an empty answer.
	optional bool
	// validate returns an error message shown under the input, or "".
	validate func(string) string
}

// formResult is what a form reports after handling a message.
type formResult int

const (
	formPending formResult = iota
	formDone
	formCanceled
)

// form walks the user through its fields one at a time with a single
// text input.
type form struct {
	fields []formField
	values []string
	step   int
	errMsg string
	input  textinput.Model
	keys   InputKeyMap
	active bool
	width  int
	styles *Styles
}

func newForm(keys InputKeyMap, styles *Styles) *form {
	return &form{input: textinput.New(), keys: keys, styles: styles, width: 40}
}

// start opens the form with fields and focuses the first one.
func (f *form) start(fields ...formField) tea.Cmd {
	f.fields = fields
	f.values = make([]string, len(fields))
	f.step = 0
	f.errMsg = ""
	f.active = true
	f.load()
	f.input.Focus()
	return textinput.Blink
}

func (f *form) load() {
	field := f.fields[f.step]
	f.input.Reset()
	f.input.Placeholder = field.placeholder
	f.input.CharLimit = field.charLimit
	f.input.SetValue(field.value)
	f.input.CursorEnd()
}

func (f *form) close() {
	f.active = false
	f.errMsg = ""
	f.input.Reset()
	f.input.Blur()
}

func (f *form) setWidth(w int) {
	f.width = w
	f.input.Width = max(10, w)
}

// value returns the answer for field i.
func (f *form) value(i int) string {
	if i < 0 || i >= len(f.values) {
		return ""
	}
	return f.values[i]
}

// update handles a message while the form is open.
func (f *form) update(msg tea.Msg) (formResult, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, f.keys.Cancel):
			f.close()
			return formCanceled, nil

		case key.Matches(km, f.keys.Confirm):
			field := f.fields[f.step]
			v := strings.TrimSpace(f.input.Value())
			if v == "" && !field.optional {
				if f.step == 0 {
					f.close()
					return formCanceled, nil
				}
				f.errMsg = field.label + " is required"
				return formPending, nil
			}
			if v != "" && field.validate != nil {
				if problem := field.validate(v); problem != "" {
					f.errMsg = problem
					return formPending, nil
				}
			}
			f.values[f.step] = v
			f.errMsg = ""
			if f.step == len(f.fields)-1 {
				f.close()
				return formDone, nil
			}
			f.step++
			f.load()
			return formPending, nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return formPending, cmd
}

// View renders the current prompt.
func (f *form) View() string {
	if !f.active {
		return ""
	}
	var b strings.Builder
	field := f.fields[f.step]
	b.WriteString(f.styles.InputPromptStyle.Render(field.label+": ") + f.input.View())
	if len(f.fields) > 1 {
		b.WriteString(f.styles.StatLabelStyle.Render(fmt.Sprintf(" (%d/%d)", f.step+1, len(f.fields))))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + f.styles.ErrorStyle.Render(f.errMsg))
	}
	return b.String()
}
