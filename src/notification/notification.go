package notification

import (
	"log"
	"sync"
	"unicode/utf8"
)

const (
	appID        = "cordshot"
	maxStatusLen = 200
)

// Notifier surfaces transient status messages and blocking errors to the
// user.
type Notifier interface {
	Status(title, message string)
	Error(title, message string)
}

// System uses the platform notification surfaces.
type System struct{}

func (System) Status(title, message string) { Status(title, message) }

func (System) Error(title, message string) { ShowBlockingError(title, message) }

var (
	desktopMu sync.Mutex
	desktop   Notifier
)

// SetDesktop registers an in-application notifier used on platforms
// without a native toast and error box. nil removes it.
func SetDesktop(n Notifier) {
	desktopMu.Lock()
	desktop = n
	desktopMu.Unlock()
}

func desktopNotifier() Notifier {
	desktopMu.Lock()
	defer desktopMu.Unlock()
	return desktop
}

// Status shows a non-blocking toast. Delivery failures are only logged.
func Status(title, message string) {
	message = truncate(message, maxStatusLen)
	go func() {
		if err := showToast(title, message); err != nil {
			log.Printf("Failed to show notification: %v", err)
		}
	}()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
