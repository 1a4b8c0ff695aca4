package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"log"
	"sync"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"
)

// ErrUnavailable is returned for image writes when the native clipboard
// could not be initialised.
var ErrUnavailable = errors.New("native clipboard unavailable")

var (
	writeMu sync.Mutex
	native  bool
)

// Init prepares the native clipboard. Text writes keep working through the
// fallback when it fails.
func Init() error {
	writeMu.Lock()
	defer writeMu.Unlock()
	if err := clipboard.Init(); err != nil {
		native = false
		return err
	}
	native = true
	return nil
}

// Write performs a mutex-guarded text write to prevent corruption under
// parallel writes.
func Write(text string) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	if native {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}
	return atotto.WriteAll(text)
}

// WriteImage places img on the clipboard as PNG.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	if !native {
		return ErrUnavailable
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

// Writer adapts the package functions to the fire-and-forget collaborator
// interfaces used by sessions and the picker. Failures are logged.
type Writer struct{}

func (Writer) WriteText(text string) {
	if err := Write(text); err != nil {
		log.Printf("CLIPBOARD: text write failed: %v", err)
	}
}

func (Writer) WriteImage(img image.Image) {
	if err := WriteImage(img); err != nil {
		log.Printf("CLIPBOARD: image write failed: %v", err)
	}
}
