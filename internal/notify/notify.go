// Package notify sends desktop notifications. It uses osascript on macOS and
// notify-send on Linux, and does nothing elsewhere.
package notify

import (
	"fmt"
	"strings"

	"productivelife/internal/model"
)

// Notifier sends desktop notifications.
type Notifier interface {
	// Send shows a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound shows a notification and plays the default sound.
	SendWithSound(title, message string) error

	// IsSupported reports whether notifications can be shown here.
	IsSupported() bool
}

type noopNotifier struct{}

func (n *noopNotifier) Send(title, message string) error {
	return nil
}

func (n *noopNotifier) SendWithSound(title, message string) error {
	return nil
}

func (n *noopNotifier) IsSupported() bool {
	return false
}

// New creates a platform-specific notifier, or a no-op one when the platform
// has no notification tool installed.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return &noopNotifier{}
	}
	return n
}

// maxListed caps how many habit names go into one reminder.
const maxListed = 5

// Pending returns the habits not yet completed today, in order.
func Pending(habits []model.Habit) []model.Habit {
	var out []model.Habit
	for _, h := range habits {
		if !h.CompletedToday {
			out = append(out, h)
		}
	}
	return out
}

// Reminder builds the notification for habits still open today. It returns
// false when there is nothing to remind about.
func Reminder(habits []model.Habit) (title, message string, ok bool) {
	pending := Pending(habits)
	if len(pending) == 0 {
		return "", "", false
	}

	if len(pending) == 1 {
		title = "1 habit left today"
	} else {
		title = fmt.Sprintf("%d habits left today", len(pending))
	}

	names := make([]string, 0, maxListed)
	for i, h := range pending {
		if i == maxListed {
			names = append(names, fmt.Sprintf("and %d more", len(pending)-maxListed))
			break
		}
		names = append(names, h.Name)
	}
	return title, strings.Join(names, ", "), true
}

// RemindHabits sends a reminder for open habits through n. It reports how many
// habits were open; zero means nothing was sent.
func RemindHabits(n Notifier, habits []model.Habit, sound bool) (int, error) {
	title, message, ok := Reminder(habits)
	if !ok {
		return 0, nil
	}
	send := n.Send
	if sound {
		send = n.SendWithSound
	}
	if err := send(title, message); err != nil {
		return 0, err
	}
	return len(Pending(habits)), nil
}
