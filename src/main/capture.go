package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cordshot/src/clipboard"
	"cordshot/src/config"
	"cordshot/src/gui"
	"cordshot/src/notification"
	"cordshot/src/screenshot"
	"cordshot/src/session"
	"cordshot/src/singleinstance"
)

// runCapture hands the capture to a running resident, or performs a single
// standalone session when none answers. The saved path, if any, is printed.
func runCapture(cfg *config.Config) error {
	ctx := context.Background()
	delegated, path, err := singleinstance.NewClient().Delegate(ctx, singleinstance.CommandCapture)
	if err != nil {
		log.Printf("Delegation error: %v", err)
		return err
	}
	if delegated {
		log.Printf("Delegated to resident")
		printPath(path)
		return nil
	}
	log.Printf("No resident detected, capturing standalone")
	return captureStandalone(ctx, cfg)
}

func captureStandalone(ctx context.Context, cfg *config.Config) error {
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard: native init failed: %v", err)
	}
	ui := gui.New(appTitle, gui.Actions{})
	notification.SetDesktop(ui)
	defer notification.SetDesktop(nil)

	done := make(chan error, 1)
	go func() {
		defer ui.Quit()
		ev, err := session.Execute(ctx, session.Options{
			Delay:     cfg.CaptureDelay,
			Capture:   screenshot.Capture,
			Selector:  ui.Selector(),
			Clipboard: clipboard.Writer{},
			Prompter:  ui.Prompter(),
			SaveDir:   cfg.ResolvedSaveDir(),
			Notifier:  notification.System{},
		})
		if c, ok := ev.(session.Completed); ok {
			printPath(c.SavedPath)
		}
		done <- err
	}()

	ui.Run()
	err := <-done
	if errors.Is(err, session.ErrSelectionCancelled) || errors.Is(err, session.ErrInvalidSelection) {
		return nil
	}
	return err
}

// runPick opens the coordinate picker on an image file until it is closed.
func runPick(path string) error {
	img, err := screenshot.Load(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard: native init failed: %v", err)
	}
	ui := gui.New(appTitle, gui.Actions{})
	ui.OpenPickerStandalone(img, clipboard.Writer{})
	ui.Run()
	return nil
}

func printPath(path string) {
	if path != "" {
		fmt.Println(path)
	}
}
