//go:build linux

package notify

func newPlatformNotifier() Notifier {
	return &commandNotifier{tool: "notify-send", args: notifySendArgs, run: runCommand}
}
