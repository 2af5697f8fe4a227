// This file contains the remind subcommand handler.
package main

import (
	"context"
	"fmt"

	"productivelife/internal/notify"
)

const remindHelpText = `productivelife remind - Notify about habits still open today

USAGE:
    productivelife remind [OPTIONS]

OPTIONS:
    --sound        Play the notification sound (default from notifications.sound)
    --print        Print the reminder instead of sending a notification
    -h, --help     Show this help message

DESCRIPTION:
    Sends one desktop notification listing the habits not yet done today.
    Nothing is sent when every habit is done. Without a notification tool
    (notify-send or osascript), or with notifications.enabled off, the
    reminder is printed instead.

EXAMPLES:
    # crontab: remind at 20:00
    0 20 * * * productivelife remind
`

// runRemind handles the "productivelife remind" subcommand.
func runRemind(ctx context.Context, args []string) (err error) {
	fs := newFlagSet("remind", remindHelpText)
	sound := fs.Bool("sound", false, "play the notification sound")
	printOnly := fs.Bool("print", false, "print instead of notifying")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.close(ctx); err == nil {
			err = cerr
		}
	}()

	habits := sess.store.Habits()
	title, message, ok := notify.Reminder(habits)
	if !ok {
		fmt.Println("All habits done today 🎉")
		return nil
	}

	n := notify.New()
	if *printOnly || !sess.cfg.Notifications.Enabled || !n.IsSupported() {
		fmt.Printf("%s: %s\n", title, message)
		return nil
	}

	open, err := notify.RemindHabits(n, habits, *sound || sess.cfg.Notifications.Sound)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	sess.logger.Debug("reminder sent", "open", open)
	fmt.Printf("✓ Reminder sent (%d open)\n", open)
	return nil
}
