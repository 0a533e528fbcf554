// Package config loads and saves the CLI's provider settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/petal-labs/prism/settings"
)

// DefaultConfigPath returns the default settings file path for the current platform.
// - macOS/Linux: ~/.prism/settings.yaml
// - Windows: %USERPROFILE%\.prism\settings.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "settings.yaml"
	}

	return filepath.Join(homeDir, ".prism", "settings.yaml")
}

// LoadConfig loads settings from path.
// A missing file yields empty settings, which select the default provider.
func LoadConfig(path string) (settings.ProviderSettings, error) {
	s, err := settings.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings.ProviderSettings{}, nil
	}
	if err != nil {
		return settings.ProviderSettings{}, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// SaveConfig writes s to path as JSON or YAML according to its extension,
// creating the parent directory. The file holds credentials and is
// written owner-only.
func SaveConfig(path string, s settings.ProviderSettings) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
	default:
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
