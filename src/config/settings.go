package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const saveDirKey = "SAVE_DIR"

var ErrNotDirectory = errors.New("not a directory")

// Settings are the values the application writes back at runtime.
type Settings struct {
	SaveDir string
}

// ReadSettings reads the settings file. A missing file yields zero Settings.
func ReadSettings(path string) (Settings, error) {
	if path == "" {
		return Settings{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	return Settings{SaveDir: strings.TrimSpace(values[saveDirKey])}, nil
}

// WriteSettings replaces the settings file, creating its directory.
func WriteSettings(path string, s Settings) error {
	if path == "" {
		return errors.New("settings path not set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	values := map[string]string{}
	if s.SaveDir != "" {
		values[saveDirKey] = s.SaveDir
	}
	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
