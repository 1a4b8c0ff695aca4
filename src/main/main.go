package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"cordshot/src/config"
	"cordshot/src/logutil"
)

const appTitle = "cordshot"

type options struct {
	capture  bool
	pick     string
	saveDir  string
	settings string
	logFile  bool
}

func main() {
	// Ensure DPI awareness before creating any windows or querying metrics
	enableDPIAwareness()

	// fyne needs the main goroutine on the main OS thread
	runtime.LockOSThread()

	if err := runWithArgs(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{appTitle}
	}
	opts := &options{}
	cmd := newRootCmd(opts, run)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *options, runFn func(options) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           appTitle,
		Short:         "Region screenshots to the clipboard, from the tray",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFn(*opts)
		},
	}

	cmd.Flags().BoolVar(&opts.capture, "capture", false, "Capture once: ask the running instance, or capture standalone")
	cmd.Flags().StringVar(&opts.pick, "pick", "", "Open the coordinate picker on an image file")
	cmd.Flags().StringVar(&opts.saveDir, "save-dir", "", "Persist a new preferred save directory")
	cmd.Flags().StringVar(&opts.settings, "settings", "", "Settings file to use instead of the default")
	cmd.Flags().BoolVar(&opts.logFile, "log-file", false, "Write a debug log next to the executable")
	cmd.MarkFlagsMutuallyExclusive("capture", "pick")

	return cmd
}

func run(opts options) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{SettingsPathOverride: opts.settings})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logutil.Setup(cfg.EnableFileLogging || opts.logFile)

	if err := applySaveDir(cfg, opts.saveDir); err != nil {
		return err
	}

	log.Printf("cordshot starting (hotkey %s)", cfg.Hotkey)
	switch {
	case opts.capture:
		return runCapture(cfg)
	case opts.pick != "":
		return runPick(opts.pick)
	default:
		return runResident(cfg)
	}
}

// applySaveDir persists dir as the preferred save directory. An empty dir
// leaves the stored preference alone.
func applySaveDir(cfg *config.Config, dir string) error {
	if dir == "" {
		return nil
	}
	if err := cfg.SetSaveDir(dir); err != nil {
		return fmt.Errorf("set save directory: %w", err)
	}
	log.Printf("Save directory set to %s", logutil.Sanitize(cfg.SaveDir))
	return nil
}
