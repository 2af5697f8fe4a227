package ui

import (
	"context"
	"testing"
	"time"

	"productivelife/internal/config"
	"productivelife/internal/logging"
	"productivelife/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest disables colors so rendered output can be matched as plain text.
// Call it before createTestStyles: some styles are pre-rendered.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore opens a file-backed store in a temp dir. The returned
// pointer controls the store's clock, which starts on Monday 2025-03-10 09:00.
func createTestStore(t *testing.T) (*storage.Store, *time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	backend, err := storage.NewFileBackend(t.TempDir(), logging.Discard())
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	store, err := storage.Open(context.Background(), backend, storage.Options{
		Logger:          logging.Discard(),
		Now:             func() time.Time { return now },
		DefaultDarkMode: func() bool { return true },
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store, &now
}

func createTestStyles() *Styles {
	return NewStyles(&config.ThemeConfig{}, true)
}

func newTestApp(t *testing.T, cfg *AppConfig) (*App, *storage.Store, *time.Time) {
	t.Helper()
	setupTest(t)
	store, now := createTestStore(t)
	if cfg == nil {
		cfg = &AppConfig{Keys: &config.KeysConfig{}, ConfirmDeletions: true, NarrowLayoutThreshold: 80}
	}
	app := NewApp(context.Background(), store, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return app, store, now
}

// press builds a key message the way Bubble Tea reports it.
func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// updater is satisfied by every pane.
type updater interface {
	Update(tea.Msg) tea.Cmd
}

// fill answers a form: each answer is typed and confirmed with enter. The
// command returned by the last enter is returned.
func fill(u updater, answers ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, a := range answers {
		if a != "" {
			u.Update(press(a))
		}
		cmd = u.Update(press("enter"))
	}
	return cmd
}

// storeMsg reports whether msg is one of the store result messages.
func storeMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case tasksLoadedMsg, taskAddedMsg, taskToggledMsg, taskEditedMsg, taskDeletedMsg,
		habitsLoadedMsg, habitAddedMsg, habitToggledMsg, habitDeletedMsg,
		goalsLoadedMsg, goalAddedMsg, goalToggledMsg, goalDeletedMsg,
		darkModeMsg, rolloverMsg, undoResultMsg, redoResultMsg:
		return true
	}
	return false
}

// drain runs cmd and feeds every resulting store message back into u until
// nothing is left. Other messages such as cursor blinks are dropped so the
// loop never waits on a timer.
func drain(t *testing.T, u updater, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("drain: too many steps")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if !storeMsg(msg) {
			continue
		}
		queue = append(queue, u.Update(msg))
	}
}

// appUpdater adapts App to the updater interface for drain.
type appUpdater struct{ app *App }

func (a appUpdater) Update(msg tea.Msg) tea.Cmd {
	_, cmd := a.app.Update(msg)
	return cmd
}
