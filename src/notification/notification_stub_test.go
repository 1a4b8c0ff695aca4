//go:build !windows

package notification

import (
	"testing"
	"time"
)

type recordingNotifier struct {
	statuses chan string
	errors   chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{statuses: make(chan string, 1), errors: make(chan string, 1)}
}

func (r *recordingNotifier) Status(title, message string) {
	r.statuses <- title + ": " + message
}

func (r *recordingNotifier) Error(title, message string) {
	r.errors <- title + ": " + message
}

func TestDesktopFallbackReceivesMessages(t *testing.T) {
	rec := newRecordingNotifier()
	SetDesktop(rec)
	t.Cleanup(func() { SetDesktop(nil) })

	System{}.Error("Save failed", "disk full")
	select {
	case got := <-rec.errors:
		if got != "Save failed: disk full" {
			t.Errorf("error = %q", got)
		}
	default:
		t.Fatal("Error did not reach the desktop notifier")
	}

	System{}.Status("cordshot", "Screen capture unavailable")
	select {
	case got := <-rec.statuses:
		if got != "cordshot: Screen capture unavailable" {
			t.Errorf("status = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Status did not reach the desktop notifier")
	}
}

func TestWithoutDesktopOnlyLogs(t *testing.T) {
	SetDesktop(nil)
	ShowBlockingError("title", "message")
	if err := showToast("title", "message"); err != nil {
		t.Fatalf("showToast: %v", err)
	}
}
