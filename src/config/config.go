package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvPathEnvVar      = "CORDSHOT_ENV"
	SettingsPathEnvVar = "CORDSHOT_SETTINGS"
	DefaultHotkey      = "Ctrl+Shift+A"
	defaultDelayMs     = 200
)

type LoadOptions struct {
	// SettingsPathOverride takes precedence over CORDSHOT_SETTINGS.
	SettingsPathOverride string
}

type Config struct {
	EnableFileLogging bool
	Hotkey            string
	PickerHotkey      string
	// SaveDir is the preferred save directory; "" prompts in the pictures
	// folder every time.
	SaveDir      string
	SettingsPath string
	CaptureDelay time.Duration
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use CORDSHOT_ENV env var as a path to a config file
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	delayMs := defaultDelayMs
	if v := os.Getenv("CAPTURE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			delayMs = n
		}
	}

	cfg := &Config{
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		PickerHotkey:      strings.TrimSpace(os.Getenv("PICKER_HOTKEY")),
		SettingsPath:      resolveSettingsPath(opts),
		CaptureDelay:      time.Duration(delayMs) * time.Millisecond,
	}

	settings, err := ReadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}
	cfg.SaveDir = settings.SaveDir

	return cfg, nil
}

// ResolvedSaveDir returns the preferred directory only while it still
// exists.
func (c *Config) ResolvedSaveDir() string {
	if c.SaveDir == "" {
		return ""
	}
	info, err := os.Stat(c.SaveDir)
	if err != nil || !info.IsDir() {
		return ""
	}
	return c.SaveDir
}

// SetSaveDir records dir as the preferred save directory and persists it.
// An empty dir clears the preference.
func (c *Config) SetSaveDir(dir string) error {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return &os.PathError{Op: "setsavedir", Path: abs, Err: ErrNotDirectory}
		}
		dir = abs
	}
	if err := WriteSettings(c.SettingsPath, Settings{SaveDir: dir}); err != nil {
		return err
	}
	c.SaveDir = dir
	return nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	execDir := filepath.Dir(execPath)
	exeEnv := filepath.Join(execDir, ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func resolveSettingsPath(opts LoadOptions) string {
	if p := strings.TrimSpace(opts.SettingsPathOverride); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(SettingsPathEnvVar)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "cordshot", "settings.env")
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
