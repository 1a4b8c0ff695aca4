package eventloop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"cordshot/src/config"
	"cordshot/src/hotkey"
	"cordshot/src/logutil"
	"cordshot/src/notification"
	"cordshot/src/overlay"
	"cordshot/src/picker"
	"cordshot/src/session"
	"cordshot/src/singleinstance"
	"cordshot/src/storage"
	"cordshot/src/worker"
)

// Request is an action asked of the loop by the tray, hotkeys, the main
// window or a second instance.
type Request int

const (
	RequestCapture Request = iota
	RequestPick
	RequestPickLast
	RequestShow
	RequestChooseFolder
	RequestClearFolder
)

func (r Request) String() string {
	switch r {
	case RequestCapture:
		return "capture"
	case RequestPick:
		return "pick"
	case RequestPickLast:
		return "pick-last"
	case RequestShow:
		return "show"
	case RequestChooseFolder:
		return "choose-folder"
	case RequestClearFolder:
		return "clear-folder"
	}
	return fmt.Sprintf("request(%d)", int(r))
}

const busyMessage = "Busy, please retry"

// UI is the windowing side the loop drives.
type UI interface {
	Selector() overlay.Selector
	Prompter() storage.Prompter
	ChooseFolder(ctx context.Context, start string) (string, bool, error)
	OpenPicker(img *image.RGBA, clip picker.Clipboard)
	ShowMain()
	// HideMain hides the main window and reports whether it was showing.
	HideMain() bool
	SetStatus(text string)
	SetPreview(img image.Image)
	SetSaveDir(dir string)
}

// Tray is the subset of the tray icon the loop updates.
type Tray interface {
	UpdateTooltip(text string)
	SetSaveDir(dir string)
}

type Clipboard interface {
	WriteImage(img image.Image)
	WriteText(text string)
}

type Deps struct {
	Config    *config.Config
	UI        UI
	Capture   session.CaptureFunc
	Clipboard Clipboard
	Notifier  notification.Notifier
	// Server is optional; without it no second instance can reach the loop.
	Server singleinstance.Server
}

// Loop is the single-threaded coordinator for tray, hotkey, window and IPC
// requests. Interactive work runs on a one-slot worker so the loop can turn
// away requests while a session is open.
type Loop struct {
	deps           Deps
	tray           Tray
	pool           *worker.Pool
	busy           bool
	last           *image.RGBA
	requests       chan Request
	settings       chan config.Settings
	results        chan result
	defaultTooltip string
}

type result struct {
	kind Request
	ev   session.Event
	err  error
	dir  string
	ok   bool
	conn singleinstance.Conn
	// reshow brings the main window back after it was hidden for a capture.
	reshow bool
}

func New(deps Deps) *Loop {
	if deps.Config == nil {
		deps.Config = &config.Config{}
	}
	return &Loop{
		deps:           deps,
		pool:           worker.New(1),
		requests:       make(chan Request, 8),
		settings:       make(chan config.Settings, 1),
		results:        make(chan result, 1),
		defaultTooltip: "cordshot",
	}
}

// SetTray attaches the tray before Run.
func (l *Loop) SetTray(t Tray) { l.tray = t }

// SetDefaultTooltip optionally sets the tray tooltip base text.
func (l *Loop) SetDefaultTooltip(tt string) { l.defaultTooltip = tt }

// Post queues a request from any goroutine. Requests beyond the queue are
// dropped.
func (l *Loop) Post(r Request) {
	select {
	case l.requests <- r:
	default:
		log.Printf("eventloop: dropping %s, queue full", r)
	}
}

// SettingsChanged delivers externally edited settings into the loop.
func (l *Loop) SettingsChanged(s config.Settings) {
	select {
	case l.settings <- s:
	default:
		// Replace the stale pending value.
		select {
		case <-l.settings:
		default:
		}
		l.settings <- s
	}
}

// StartHotkeys registers the configured global hotkeys.
func (l *Loop) StartHotkeys() error {
	cfg := l.deps.Config
	return hotkey.Listen(
		hotkey.Binding{Name: "capture", Combo: cfg.Hotkey, OnPress: func() { l.Post(RequestCapture) }},
		hotkey.Binding{Name: "picker", Combo: cfg.PickerHotkey, OnPress: func() { l.Post(RequestPick) }},
	)
}

func (l *Loop) setBusy(b bool) {
	l.busy = b
	if l.tray == nil {
		return
	}
	if b {
		l.tray.UpdateTooltip("cordshot: capturing...")
	} else {
		l.tray.UpdateTooltip(l.defaultTooltip)
	}
}

// Run processes requests until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.pool.Close()

	var reqCh chan singleinstance.Conn
	if l.deps.Server != nil {
		if err := l.deps.Server.Start(ctx); err != nil {
			return err
		}
		defer l.deps.Server.Close()
		if p := l.deps.Server.Port(); p > 0 {
			log.Printf("Resident listening on 127.0.0.1:%d", p)
		}
		// Accept loop in background to avoid blocking result handling
		reqCh = make(chan singleinstance.Conn, 4)
		go func() {
			for {
				conn, err := l.deps.Server.Next(ctx)
				if err != nil {
					return
				}
				select {
				case reqCh <- conn:
				case <-ctx.Done():
					_ = conn.Close()
					return
				}
			}
		}()
	}

	l.publishSaveDir()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-l.requests:
			l.handleRequest(ctx, r, nil)
		case conn := <-reqCh:
			l.handleConn(ctx, conn)
		case s := <-l.settings:
			l.handleSettings(s)
		case res := <-l.results:
			l.handleResult(res)
		}
	}
}

func (l *Loop) handleConn(ctx context.Context, conn singleinstance.Conn) {
	switch conn.Request().Command {
	case singleinstance.CommandShow:
		l.handleRequest(ctx, RequestShow, nil)
		_ = conn.RespondSuccess("")
		_ = conn.Close()
	case singleinstance.CommandCapture:
		l.handleRequest(ctx, RequestCapture, conn)
	default:
		_ = conn.RespondError("unsupported command")
		_ = conn.Close()
	}
}

func (l *Loop) handleRequest(ctx context.Context, r Request, conn singleinstance.Conn) {
	log.Printf("eventloop: %s requested", r)
	switch r {
	case RequestShow:
		l.deps.UI.ShowMain()
		return
	case RequestClearFolder:
		l.setSaveDir("")
		return
	case RequestPickLast:
		if l.last != nil {
			l.deps.UI.OpenPicker(l.last, l.deps.Clipboard)
			return
		}
		r = RequestPick
	}

	if l.busy {
		log.Printf("eventloop: busy, rejecting %s", r)
		l.deps.UI.SetStatus(busyMessage)
		if conn != nil {
			_ = conn.RespondError(busyMessage)
			_ = conn.Close()
		}
		return
	}

	// Keep our own window out of the frozen screen.
	reshow := false
	if r != RequestChooseFolder {
		reshow = l.deps.UI.HideMain()
	}

	task := l.task(r, conn, reshow)
	l.setBusy(true)
	if !l.pool.Submit(ctx, r.String(), task) {
		l.setBusy(false)
		if reshow {
			l.deps.UI.ShowMain()
		}
		l.deps.UI.SetStatus(busyMessage)
		if conn != nil {
			_ = conn.RespondError(busyMessage)
			_ = conn.Close()
		}
	}
}

// task builds the worker job for r. Jobs only read loop state captured here
// and report back through l.results.
func (l *Loop) task(r Request, conn singleinstance.Conn, reshow bool) worker.Task {
	cfg := l.deps.Config
	ui := l.deps.UI
	switch r {
	case RequestChooseFolder:
		start := cfg.ResolvedSaveDir()
		return func(ctx context.Context) {
			dir, ok, err := ui.ChooseFolder(ctx, start)
			l.results <- result{kind: r, dir: dir, ok: ok, err: err}
		}
	case RequestPick:
		capture, delay := l.deps.Capture, cfg.CaptureDelay
		clip := l.deps.Clipboard
		return func(ctx context.Context) {
			img, err := captureAfter(ctx, capture, delay)
			if err == nil {
				ui.OpenPicker(img, clip)
			}
			l.results <- result{kind: r, err: err, reshow: reshow}
		}
	default:
		opts := session.Options{
			Delay:     cfg.CaptureDelay,
			Capture:   l.deps.Capture,
			Selector:  ui.Selector(),
			Clipboard: l.deps.Clipboard,
			Prompter:  ui.Prompter(),
			SaveDir:   cfg.ResolvedSaveDir(),
			Notifier:  l.deps.Notifier,
		}
		if conn != nil {
			opts.Target = session.DelegatedTarget{Conn: conn}
		}
		return func(ctx context.Context) {
			ev, err := session.Execute(ctx, opts)
			l.results <- result{kind: r, ev: ev, err: err, conn: conn, reshow: reshow}
		}
	}
}

func (l *Loop) handleResult(res result) {
	defer l.setBusy(false)
	if res.reshow {
		defer l.deps.UI.ShowMain()
	}
	if res.conn != nil {
		defer res.conn.Close()
	}

	switch res.kind {
	case RequestChooseFolder:
		if res.err != nil {
			log.Printf("eventloop: folder dialog failed: %v", res.err)
			l.deps.UI.SetStatus("Could not choose folder: " + res.err.Error())
			return
		}
		if res.ok {
			l.setSaveDir(res.dir)
		}
	case RequestPick:
		if res.err != nil {
			log.Printf("eventloop: picker capture failed: %v", res.err)
			l.deps.UI.SetStatus("Screen capture unavailable")
		}
	default:
		l.handleSessionResult(res)
	}
}

func (l *Loop) handleSessionResult(res result) {
	if res.ev == nil {
		log.Printf("eventloop: session failed to start: %v", res.err)
		if res.conn != nil {
			_ = res.conn.RespondError(res.err.Error())
		}
		l.deps.UI.SetStatus("Capture failed")
		return
	}
	switch ev := res.ev.(type) {
	case session.Completed:
		l.last = ev.Image
		l.deps.UI.SetPreview(ev.Image)
		if errors.Is(res.err, session.ErrSaveFailed) {
			log.Printf("eventloop: capture kept on clipboard, %v", res.err)
		}
		if ev.SavedPath != "" {
			log.Printf("eventloop: saved %s", logutil.Sanitize(ev.SavedPath))
		}
	case session.Cancelled:
		switch {
		case errors.Is(ev.Reason, session.ErrCaptureUnavailable):
			if l.deps.Notifier != nil {
				l.deps.Notifier.Status("cordshot", "Screen capture unavailable")
			}
		case errors.Is(ev.Reason, session.ErrSelectionCancelled), errors.Is(ev.Reason, session.ErrInvalidSelection):
		default:
			log.Printf("eventloop: session cancelled: %v", ev.Reason)
		}
	}
	l.deps.UI.SetStatus(session.StatusText(res.ev))
}

func (l *Loop) setSaveDir(dir string) {
	if err := l.deps.Config.SetSaveDir(dir); err != nil {
		log.Printf("eventloop: cannot set save folder: %v", err)
		l.deps.UI.SetStatus("Could not set save folder: " + err.Error())
		return
	}
	if dir == "" {
		l.deps.UI.SetStatus("Save folder cleared")
	} else {
		l.deps.UI.SetStatus("Save folder: " + dir)
	}
	l.publishSaveDir()
}

func (l *Loop) handleSettings(s config.Settings) {
	if s.SaveDir == l.deps.Config.SaveDir {
		return
	}
	log.Printf("eventloop: settings changed on disk")
	l.deps.Config.SaveDir = s.SaveDir
	l.publishSaveDir()
}

func (l *Loop) publishSaveDir() {
	dir := l.deps.Config.ResolvedSaveDir()
	l.deps.UI.SetSaveDir(dir)
	if l.tray != nil {
		l.tray.SetSaveDir(dir)
	}
}

func captureAfter(ctx context.Context, capture session.CaptureFunc, delay time.Duration) (*image.RGBA, error) {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	img, err := capture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrCaptureUnavailable, err)
	}
	return img, nil
}
