//go:build !darwin && !linux

package notify

// Other platforms get the no-op notifier from New.
func newPlatformNotifier() Notifier {
	return nil
}
