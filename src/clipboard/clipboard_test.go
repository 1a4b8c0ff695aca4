package clipboard

import (
	"errors"
	"image"
	"testing"
)

func TestWrite(t *testing.T) {
	// Requires clipboard access; only check it doesn't panic.
	if err := Write("test text"); err != nil {
		t.Logf("Failed to write to clipboard: %v", err)
	}
}

func TestWriteImageWithoutInit(t *testing.T) {
	writeMu.Lock()
	prev := native
	native = false
	writeMu.Unlock()
	t.Cleanup(func() {
		writeMu.Lock()
		native = prev
		writeMu.Unlock()
	})

	err := WriteImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("WriteImage error = %v, want ErrUnavailable", err)
	}
}

func TestWriterDoesNotPanic(t *testing.T) {
	var w Writer
	w.WriteText("(1, 2)")
	w.WriteImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
}
