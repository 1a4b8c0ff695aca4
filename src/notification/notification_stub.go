//go:build !windows

package notification

import "log"

// ShowBlockingError shows message through the registered desktop notifier.
// Without one it is only logged.
func ShowBlockingError(title, message string) {
	log.Printf("%s: %s", title, message)
	if d := desktopNotifier(); d != nil {
		d.Error(title, message)
	}
}

func showToast(title, message string) error {
	log.Printf("%s: %s", title, message)
	if d := desktopNotifier(); d != nil {
		d.Status(title, message)
	}
	return nil
}
