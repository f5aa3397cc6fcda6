package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

// defaultsInstaller writes the embedded defaults into a config directory.
type defaultsInstaller struct {
	embedFS embed.FS
}

// newDefaultsInstaller creates a new defaultsInstaller with the given embedded filesystem.
func newDefaultsInstaller(embedFS embed.FS) *defaultsInstaller {
	return &defaultsInstaller{embedFS: embedFS}
}

// Install creates the config directory and installs the default config file if it doesn't exist.
// this is called on first run. an existing config file is never overwritten.
// the scenarios subdirectory is created empty; users drop their own *.yml files there.
func (d *defaultsInstaller) Install(configDir string) error {
	// create config directory (0700 - user only)
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(configDir, "scenarios"), 0o700); err != nil {
		return fmt.Errorf("create scenarios dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config")
	_, statErr := os.Stat(configPath)
	if statErr != nil && !os.IsNotExist(statErr) {
		return fmt.Errorf("check config file: %w", statErr)
	}
	if os.IsNotExist(statErr) {
		data, err := d.embedFS.ReadFile("defaults/config")
		if err != nil {
			return fmt.Errorf("read embedded config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}

	return nil
}
