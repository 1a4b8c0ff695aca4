package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cordshot/src/clipboard"
	"cordshot/src/config"
	"cordshot/src/eventloop"
	"cordshot/src/gui"
	"cordshot/src/hotkey"
	"cordshot/src/notification"
	"cordshot/src/screenshot"
	"cordshot/src/singleinstance"
	"cordshot/src/tray"
)

const trayShutdownTimeout = 2 * time.Second

// runResident starts the tray-resident application, or asks an already
// running one to show its window.
func runResident(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if port, ok := singleinstance.DetectResidentPort(ctx); ok {
		log.Printf("Resident already running on port %d, asking it to show", port)
		_, _, err := singleinstance.NewClient().Delegate(ctx, singleinstance.CommandShow)
		return err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard: native init failed, text only: %v", err)
	}

	var loop *eventloop.Loop
	post := func(r eventloop.Request) func() {
		return func() { loop.Post(r) }
	}

	ui := gui.New(appTitle, gui.Actions{
		OnCapture:      post(eventloop.RequestCapture),
		OnPick:         post(eventloop.RequestPickLast),
		OnChooseFolder: post(eventloop.RequestChooseFolder),
		OnClearFolder:  post(eventloop.RequestClearFolder),
	})

	loop = eventloop.New(eventloop.Deps{
		Config:    cfg,
		UI:        ui,
		Capture:   screenshot.Capture,
		Clipboard: clipboard.Writer{},
		Notifier:  notification.System{},
		Server:    singleinstance.NewServer(),
	})
	notification.SetDesktop(ui)
	defer notification.SetDesktop(nil)

	tooltip := fmt.Sprintf("%s - Press %s to capture", appTitle, cfg.Hotkey)
	loop.SetDefaultTooltip(tooltip)

	trayIcon, err := tray.New(tray.Config{
		Title:          appTitle,
		Tooltip:        tooltip,
		Hotkey:         cfg.Hotkey,
		OnCapture:      post(eventloop.RequestCapture),
		OnPick:         post(eventloop.RequestPick),
		OnShow:         post(eventloop.RequestShow),
		OnChooseFolder: post(eventloop.RequestChooseFolder),
		OnClearFolder:  post(eventloop.RequestClearFolder),
		OnExit:         cancel,
	})
	if err != nil {
		return fmt.Errorf("create tray: %w", err)
	}
	loop.SetTray(trayIcon)
	go trayIcon.Run()
	defer trayIcon.Destroy()

	if err := loop.StartHotkeys(); err != nil {
		log.Printf("Hotkeys unavailable: %v", err)
	}
	defer hotkey.Stop()

	go func() {
		if err := config.Watch(ctx, cfg.SettingsPath, loop.SettingsChanged); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Settings watcher stopped: %v", err)
		}
	}()

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()

	loopDone := make(chan error, 1)
	go func() {
		defer ui.Quit()
		err := loop.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			notification.ShowBlockingError(appTitle, fmt.Sprintf("Could not start: %v", err))
			loopDone <- err
			return
		}
		loopDone <- nil
	}()

	ui.Run()
	cancel()
	err = <-loopDone

	trayIcon.Destroy()
	select {
	case <-trayIcon.Done():
	case <-time.After(trayShutdownTimeout):
		log.Printf("Tray did not exit within %s", trayShutdownTimeout)
	}
	log.Printf("cordshot exiting")
	return err
}
