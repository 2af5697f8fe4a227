//go:build darwin

package notify

func newPlatformNotifier() Notifier {
	return &commandNotifier{tool: "osascript", args: osascriptArgs, run: runCommand}
}
