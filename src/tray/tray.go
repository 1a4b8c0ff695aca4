package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"
)

// Config wires menu entries to callbacks. Nil callbacks leave the entry in
// place but inert.
type Config struct {
	Title   string
	Tooltip string
	// Hotkey is shown next to the capture entry.
	Hotkey string

	OnCapture      func()
	OnPick         func()
	OnShow         func()
	OnChooseFolder func()
	OnClearFolder  func()
	// OnExit runs after Quit is chosen or the tray is torn down.
	OnExit func()
}

// Tray is the notification-area icon and menu.
type Tray struct {
	cfg Config

	mu       sync.Mutex
	ready    bool
	tooltip  string
	saveDir  string
	mClear   *systray.MenuItem
	quitOnce sync.Once
	done     chan struct{}
}

func New(cfg Config) (*Tray, error) {
	return &Tray{cfg: cfg, tooltip: cfg.Tooltip, done: make(chan struct{})}, nil
}

// Run blocks until the tray is destroyed.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Destroy removes the icon and stops Run.
func (t *Tray) Destroy() {
	t.quitOnce.Do(systray.Quit)
}

// Done is closed once the tray has exited.
func (t *Tray) Done() <-chan struct{} { return t.done }

// UpdateTooltip replaces the hover text. Safe before the tray is ready.
func (t *Tray) UpdateTooltip(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tooltip = text
	if t.ready {
		systray.SetTooltip(text)
	}
}

// SetSaveDir reflects the preferred save directory in the menu.
func (t *Tray) SetSaveDir(dir string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saveDir = dir
	if t.ready {
		t.applySaveDir()
	}
}

func (t *Tray) applySaveDir() {
	if t.saveDir == "" {
		t.mClear.SetTitle("Clear Save Folder")
		t.mClear.SetTooltip("No save folder set; you will be asked every time")
		t.mClear.Disable()
		return
	}
	t.mClear.SetTitle("Clear Save Folder (" + t.saveDir + ")")
	t.mClear.SetTooltip("Stop defaulting to " + t.saveDir)
	t.mClear.Enable()
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle(t.cfg.Title)

	mCapture := systray.AddMenuItem(CaptureLabel(t.cfg.Hotkey), "Select a screen region to copy")
	mPick := systray.AddMenuItem("Pick Coordinates", "Click points on a screenshot to read their coordinates")
	mShow := systray.AddMenuItem("Show Window", "Show the last capture")
	systray.AddSeparator()
	mChoose := systray.AddMenuItem("Choose Save Folder…", "Default folder for saved captures")
	mClear := systray.AddMenuItem("Clear Save Folder", "")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit cordshot")

	t.mu.Lock()
	t.ready = true
	t.mClear = mClear
	systray.SetTooltip(t.tooltip)
	t.applySaveDir()
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				call(t.cfg.OnCapture)
			case <-mPick.ClickedCh:
				call(t.cfg.OnPick)
			case <-mShow.ClickedCh:
				call(t.cfg.OnShow)
			case <-mChoose.ClickedCh:
				call(t.cfg.OnChooseFolder)
			case <-mClear.ClickedCh:
				call(t.cfg.OnClearFolder)
			case <-mQuit.ClickedCh:
				log.Printf("tray: quit requested")
				t.Destroy()
				return
			case <-t.done:
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	close(t.done)
	call(t.cfg.OnExit)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// CaptureLabel is the capture menu entry text.
func CaptureLabel(hotkey string) string {
	if hotkey == "" {
		return "Capture Region"
	}
	return "Capture Region (" + hotkey + ")"
}
