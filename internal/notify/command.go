package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// commandNotifier shows notifications by running an external tool.
type commandNotifier struct {
	tool string
	args func(title, message string, sound bool) []string
	run  func(name string, args ...string) error
}

func (n *commandNotifier) Send(title, message string) error {
	return n.send(title, message, false)
}

// SendWithSound asks for a sound. On Linux this depends on the notification
// daemon.
func (n *commandNotifier) SendWithSound(title, message string) error {
	return n.send(title, message, true)
}

func (n *commandNotifier) IsSupported() bool {
	_, err := exec.LookPath(n.tool)
	return err == nil
}

func (n *commandNotifier) send(title, message string, sound bool) error {
	if err := n.run(n.tool, n.args(title, message, sound)...); err != nil {
		return fmt.Errorf("%s failed: %w", n.tool, err)
	}
	return nil
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func notifySendArgs(title, message string, sound bool) []string {
	args := []string{"--app-name=productivelife"}
	if sound {
		args = append(args, "--urgency=normal")
	} else {
		args = append(args, "--urgency=low")
	}
	return append(args, title, message)
}

func osascriptArgs(title, message string, sound bool) []string {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(message), escapeAppleScript(title))
	if sound {
		script += ` sound name "default"`
	}
	return []string{"-e", script}
}

// escapeAppleScript escapes backslashes and quotes for AppleScript strings.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
