//go:build windows

package notification

import (
	"log"

	"github.com/go-toast/toast"
	"golang.org/x/sys/windows"
)

func showToast(title, message string) error {
	n := toast.Notification{
		AppID:   appID,
		Title:   title,
		Message: message,
	}
	return n.Push()
}

// ShowBlockingError displays a modal error box and returns once it is
// dismissed.
func ShowBlockingError(title, message string) {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		log.Printf("%s: %s", title, message)
		return
	}
	m, err := windows.UTF16PtrFromString(message)
	if err != nil {
		log.Printf("%s: %s", title, message)
		return
	}
	if _, err := windows.MessageBox(0, m, t, windows.MB_OK|windows.MB_ICONERROR|windows.MB_TOPMOST); err != nil {
		log.Printf("MessageBox failed: %v (%s: %s)", err, title, message)
	}
}
